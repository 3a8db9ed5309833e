// Package content models the editable content entities of the site and the
// repository facade that persists them and keeps the rendered-page cache
// coherent after every write.
package content

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/internal/locales"
)

// Type identifies one kind of editable content entity.
type Type string

const (
	TypeHero         Type = "hero"
	TypeAbout        Type = "about"
	TypeFeature      Type = "feature"
	TypeRoom         Type = "room"
	TypeTestimonial  Type = "testimonial"
	TypeGalleryImage Type = "gallery_image"
	TypeEvent        Type = "event"
	TypeGiftCard     Type = "gift_card"
	TypeSeminar      Type = "seminar"
	// TypePageHero is the singleton-per-page banner, keyed by page slug.
	TypePageHero Type = "page_hero"
)

// Types lists every editable entity type.
var Types = []Type{
	TypeHero, TypeAbout, TypeFeature, TypeRoom, TypeTestimonial,
	TypeGalleryImage, TypeEvent, TypeGiftCard, TypeSeminar, TypePageHero,
}

func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Fields holds the human-readable attributes of an entity. Each attribute
// exists in its canonical (default locale) form under its bare name, plus
// one shadow entry per non-default locale ("title", "title_en", "title_de").
// Shadow entries may be empty; the canonical value is the render fallback.
type Fields map[string]string

// Localized returns the value of name for a locale, falling back to the
// canonical value when the shadow entry is empty or absent.
func (f Fields) Localized(name, locale string) string {
	if locale != locales.Default {
		if v := f[name+"_"+locale]; v != "" {
			return v
		}
	}
	return f[name]
}

// splitLocaleSuffix reports whether key is a shadow entry ("title_en") and
// returns its canonical counterpart.
func splitLocaleSuffix(key string) (base string, ok bool) {
	idx := strings.LastIndex(key, "_")
	if idx <= 0 {
		return "", false
	}
	if !locales.IsSupported(key[idx+1:]) || key[idx+1:] == locales.Default {
		return "", false
	}
	return key[:idx], true
}

// Validate enforces the canonical-field invariant: every shadow entry must
// have a populated canonical counterpart.
func (f Fields) Validate() error {
	for key, value := range f {
		base, ok := splitLocaleSuffix(key)
		if !ok || value == "" {
			continue
		}
		if f[base] == "" {
			return errors.Wrapf(InvalidEntityErr, "field %q is localized but its canonical field %q is empty", key, base)
		}
	}
	return nil
}

// Entity is one editable content item. Slug is set only for page-hero
// entities, which are keyed uniquely by the logical page they decorate.
type Entity struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Slug      string    `json:"slug,omitempty"`
	Fields    Fields    `json:"fields"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Entity) Validate() error {
	if !e.Type.Valid() {
		return errors.Wrapf(InvalidEntityErr, "unknown entity type %q", e.Type)
	}
	if e.Type == TypePageHero && e.Slug == "" {
		return errors.Wrap(InvalidEntityErr, "page hero requires a slug")
	}
	return e.Fields.Validate()
}
