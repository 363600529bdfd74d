package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/geodraw/pkg/errors"
)

// Family selects the renderer for a document.
type Family string

const (
	FamilyTriangle       Family = "triangle"
	FamilyTransformation Family = "transformation"
)

// Families lists every supported family.
var Families = []Family{FamilyTriangle, FamilyTransformation}

// Document is one diagram to render. Exactly one of Triangle and
// Transformation is set, matching Family.
type Document struct {
	Name   string
	Family Family
	Width  float64
	Height float64

	Triangle       *Triangle
	Transformation *TransformDiagram
}

type documentJSON struct {
	Name    string          `json:"name,omitempty"`
	Family  Family          `json:"family"`
	Width   float64         `json:"width,omitempty"`
	Height  float64         `json:"height,omitempty"`
	Diagram json.RawMessage `json:"diagram"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	var body any
	switch d.Family {
	case FamilyTriangle:
		body = d.Triangle
	case FamilyTransformation:
		body = d.Transformation
	default:
		return nil, fmt.Errorf("unknown family %q", d.Family)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(documentJSON{
		Name: d.Name, Family: d.Family, Width: d.Width, Height: d.Height, Diagram: raw,
	})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := strictUnmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{Name: raw.Name, Family: raw.Family, Width: raw.Width, Height: raw.Height}
	if len(raw.Diagram) == 0 || string(raw.Diagram) == "null" {
		return errors.New(errors.ErrCodeInvalidInput, "diagram is required")
	}
	switch raw.Family {
	case FamilyTriangle:
		d.Triangle = &Triangle{}
		return strictUnmarshal(raw.Diagram, d.Triangle)
	case FamilyTransformation:
		d.Transformation = &TransformDiagram{}
		return strictUnmarshal(raw.Diagram, d.Transformation)
	case "":
		return errors.New(errors.ErrCodeInvalidFamily, "family is required")
	default:
		return errors.New(errors.ErrCodeInvalidFamily, "unknown family %q (want triangle or transformation)", raw.Family)
	}
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Decode reads a single document or a {"diagrams": [...]} batch from r.
// Documents without a name are named after their position.
func Decode(r io.Reader) ([]Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read diagram")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode diagram")
	}

	var docs []Document
	if batch, ok := probe["diagrams"]; ok {
		if len(probe) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "batch files may only contain \"diagrams\"")
		}
		if err := json.Unmarshal(batch, &docs); err != nil {
			return nil, wrapDecode(err)
		}
		if len(docs) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "batch contains no diagrams")
		}
	} else {
		var d Document
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, wrapDecode(err)
		}
		docs = []Document{d}
	}

	for i := range docs {
		if docs[i].Name != "" {
			continue
		}
		if len(docs) == 1 {
			docs[i].Name = "diagram"
		} else {
			docs[i].Name = fmt.Sprintf("diagram-%d", i+1)
		}
	}
	return docs, nil
}

// DecodeOne reads exactly one document from r.
func DecodeOne(r io.Reader) (Document, error) {
	docs, err := Decode(r)
	if err != nil {
		return Document{}, err
	}
	if len(docs) != 1 {
		return Document{}, errors.New(errors.ErrCodeInvalidInput, "expected one diagram, got %d", len(docs))
	}
	return docs[0], nil
}

// wrapDecode keeps coded errors raised by the decoders and wraps the rest
// as invalid input.
func wrapDecode(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode diagram")
}
