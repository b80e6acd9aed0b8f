package sections

import "encoding/json"

// Envelope is the wire form of a section: a type tag plus an untyped data
// payload. The write path stores envelopes as-is so that section kinds the
// renderer does not know yet still round-trip through the database.
type Envelope struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Decode converts an envelope into its typed section. The second return is
// false for unknown type tags; callers skip those rather than erroring, so a
// newer editor can publish section kinds this renderer was built before.
func Decode(env Envelope) (Section, bool) {
	raw, err := json.Marshal(env.Data)
	if err != nil {
		return nil, false
	}

	switch Type(env.Type) {
	case TypeHero:
		return decodeInto[Hero](raw)
	case TypeText:
		return decodeInto[Text](raw)
	case TypeImage:
		return decodeInto[Image](raw)
	case TypeGallery:
		return decodeInto[Gallery](raw)
	case TypePopularPosts:
		return decodeInto[PopularPosts](raw)
	case TypeBreadcrumb:
		return decodeInto[Breadcrumb](raw)
	case TypeVideo:
		return decodeInto[Video](raw)
	default:
		return nil, false
	}
}

func decodeInto[S Section](raw []byte) (Section, bool) {
	var s S
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return s, true
}

// FindHero returns the first hero section in the list, if any.
func FindHero(list []Envelope) (Hero, bool) {
	for _, env := range list {
		if sec, ok := Decode(env); ok {
			if h, ok := sec.(Hero); ok {
				return h, true
			}
		}
	}
	return Hero{}, false
}

// FindBreadcrumb returns the first breadcrumb section in the list, if any.
func FindBreadcrumb(list []Envelope) (Breadcrumb, bool) {
	for _, env := range list {
		if sec, ok := Decode(env); ok {
			if b, ok := sec.(Breadcrumb); ok {
				return b, true
			}
		}
	}
	return Breadcrumb{}, false
}
