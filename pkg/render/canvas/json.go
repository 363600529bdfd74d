package canvas

import "encoding/json"

type jsonScene struct {
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Background string    `json:"background,omitempty"`
	Commands   []Command `json:"commands"`
}

// MarshalJSON exports the canvas as a scene of draw commands.
func (c *Canvas) MarshalJSON() ([]byte, error) {
	cmds := c.cmds
	if cmds == nil {
		cmds = []Command{}
	}
	return json.Marshal(jsonScene{
		Width:      c.width,
		Height:     c.height,
		Background: c.background,
		Commands:   cmds,
	})
}

// UnmarshalJSON restores a canvas exported with MarshalJSON.
func (c *Canvas) UnmarshalJSON(data []byte) error {
	var s jsonScene
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Canvas{width: s.Width, height: s.Height, background: s.Background, cmds: s.Commands}
	return nil
}
