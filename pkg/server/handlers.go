package server

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/geodraw/pkg/buildinfo"
	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleFamilies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"families": diagram.Families,
		"formats":  []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON},
	})
}

// handleRender renders a single document and responds with the artifact
// bytes.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := diagram.DecodeOne(r.Body)
	if err != nil {
		s.writeError(w, r, decodeError(err))
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts, err := s.requestOptions(r, []string{format})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.RenderHit))
	w.Header().Set("X-Skipped-Annotations", strconv.Itoa(len(res.Skipped)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type batchItem struct {
	Name      string            `json:"name"`
	Family    string            `json:"family"`
	DocHash   string            `json:"doc_hash"`
	Cached    bool              `json:"cached"`
	Skipped   []pipeline.Skip   `json:"skipped,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
}

// handleBatch renders every document of a batch body. Artifacts are
// base64-encoded in the JSON response.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	docs, err := diagram.Decode(r.Body)
	if err != nil {
		s.writeError(w, r, decodeError(err))
		return
	}
	formats := r.URL.Query()["format"]
	opts, err := s.requestOptions(r, formats)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	results, err := s.runner.ExecuteBatch(r.Context(), docs, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items := make([]batchItem, len(results))
	for i, res := range results {
		items[i] = batchItem{
			Name:      res.Name,
			Family:    res.Family,
			DocHash:   res.DocHash,
			Cached:    res.CacheInfo.RenderHit,
			Skipped:   res.Skipped,
			Artifacts: res.Artifacts,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

// requestOptions layers query parameters over the server defaults.
func (s *Server) requestOptions(r *http.Request, formats []string) (pipeline.Options, error) {
	opts := s.opts.Defaults
	opts.Logger = s.log.With("render_id", RenderID(r.Context()))
	if len(formats) > 0 {
		opts.Formats = formats
	}
	q := r.URL.Query()
	for name, dst := range map[string]*float64{"width": &opts.Width, "height": &opts.Height, "scale": &opts.Scale} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, v)
		}
		*dst = f
	}
	if q.Get("refresh") == "true" {
		opts.Refresh = true
	}
	return opts, opts.ValidateForRender()
}

// decodeError gives body decoding failures an input code unless they
// already carry one.
func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body too large")
	}
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
