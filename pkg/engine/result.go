package engine

import "encoding/json"

// UniversalData is what Extract pulls out of a rendered document. Each
// bucket holds the outer markup of matching elements joined by "\n".
type UniversalData struct {
	Title   string
	AppNode string
	Scripts string
	Styles  string
	Meta    string
	Links   string
}

// Result is the output of a render.
type Result struct {
	HTML    string  `json:"html"`
	Globals Globals `json:"globals"`
}

// Globals are the values a host places around the rendered markup.
type Globals struct {
	Styles       string
	Title        string
	Meta         string
	Scripts      string
	Links        string
	TransferData map[string]any

	// Extra holds caller-supplied keys. They are flattened into the JSON
	// object; the named fields take precedence on collision.
	Extra map[string]any
}

const (
	keyStyles       = "styles"
	keyTitle        = "title"
	keyMeta         = "meta"
	keyScripts      = "scripts"
	keyLinks        = "links"
	keyTransferData = "transferData"
)

// MarshalJSON encodes the named fields alongside the Extra keys.
func (g Globals) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.Extra)+6)
	for k, v := range g.Extra {
		out[k] = v
	}
	out[keyStyles] = g.Styles
	out[keyTitle] = g.Title
	out[keyMeta] = g.Meta
	out[keyScripts] = g.Scripts
	out[keyLinks] = g.Links
	if g.TransferData != nil {
		out[keyTransferData] = g.TransferData
	} else {
		delete(out, keyTransferData)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the named fields and collects every other key into
// Extra.
func (g *Globals) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*g = Globals{}
	for k, v := range raw {
		var err error
		switch k {
		case keyStyles:
			err = json.Unmarshal(v, &g.Styles)
		case keyTitle:
			err = json.Unmarshal(v, &g.Title)
		case keyMeta:
			err = json.Unmarshal(v, &g.Meta)
		case keyScripts:
			err = json.Unmarshal(v, &g.Scripts)
		case keyLinks:
			err = json.Unmarshal(v, &g.Links)
		case keyTransferData:
			err = json.Unmarshal(v, &g.TransferData)
		default:
			var val any
			if err = json.Unmarshal(v, &val); err == nil {
				if g.Extra == nil {
					g.Extra = make(map[string]any)
				}
				g.Extra[k] = val
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
