package models

import "time"

// TaxonomyKind is one of the catalog classification axes.
type TaxonomyKind string

const (
	TaxonomyFamily      TaxonomyKind = "family"
	TaxonomySegment     TaxonomyKind = "segment"
	TaxonomyApplication TaxonomyKind = "application"
	TaxonomyGroup       TaxonomyKind = "group"
)

// TaxonomyKinds lists the taxonomy axes.
func TaxonomyKinds() []TaxonomyKind {
	return []TaxonomyKind{TaxonomyFamily, TaxonomySegment, TaxonomyApplication, TaxonomyGroup}
}

// Taxonomy is a named entry of a catalog classification axis.
type Taxonomy struct {
	ID        string       `json:"id"`
	Kind      TaxonomyKind `json:"kind"       validate:"required,oneof=family segment application group"`
	Name      string       `json:"name"       validate:"required"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (t *Taxonomy) GetID() string           { return t.ID }
func (t *Taxonomy) GetName() string         { return t.Name }
func (t *Taxonomy) GetCreatedAt() time.Time { return t.CreatedAt }
func (t *Taxonomy) GetUpdatedAt() time.Time { return t.UpdatedAt }
func (t *Taxonomy) SetID(id string)         { t.ID = id }
func (t *Taxonomy) Stamp(now time.Time)     { stamp(&t.CreatedAt, &t.UpdatedAt, now) }

// Product is a catalog entry. Names and descriptions are keyed by language code.
type Product struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Names        map[string]string `json:"names"         validate:"required,min=1"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	ImageURL     string            `json:"image_url,omitempty"`
	Active       bool              `json:"active"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Classification is stored in mapping rows, not on the product record.
	FamilyIDs      []string `json:"family_ids,omitempty"`
	SegmentIDs     []string `json:"segment_ids,omitempty"`
	ApplicationIDs []string `json:"application_ids,omitempty"`
	GroupIDs       []string `json:"group_ids,omitempty"`
}

func (p *Product) GetID() string { return p.ID }

// GetName returns the Portuguese name, falling back to any name.
func (p *Product) GetName() string {
	if name, ok := p.Names["pt"]; ok {
		return name
	}

	for _, lang := range []string{"en", "es"} {
		if name, ok := p.Names[lang]; ok {
			return name
		}
	}

	for _, name := range p.Names {
		return name
	}

	return p.Code
}

func (p *Product) GetCreatedAt() time.Time { return p.CreatedAt }
func (p *Product) GetUpdatedAt() time.Time { return p.UpdatedAt }
func (p *Product) SetID(id string)         { p.ID = id }
func (p *Product) Stamp(now time.Time)     { stamp(&p.CreatedAt, &p.UpdatedAt, now) }

// TaxonomyIDs returns the classification ids of the product for kind.
func (p *Product) TaxonomyIDs(kind TaxonomyKind) []string {
	switch kind {
	case TaxonomyFamily:
		return p.FamilyIDs
	case TaxonomySegment:
		return p.SegmentIDs
	case TaxonomyApplication:
		return p.ApplicationIDs
	case TaxonomyGroup:
		return p.GroupIDs
	default:
		return nil
	}
}

// SetTaxonomyIDs replaces the classification ids of the product for kind.
func (p *Product) SetTaxonomyIDs(kind TaxonomyKind, ids []string) {
	switch kind {
	case TaxonomyFamily:
		p.FamilyIDs = ids
	case TaxonomySegment:
		p.SegmentIDs = ids
	case TaxonomyApplication:
		p.ApplicationIDs = ids
	case TaxonomyGroup:
		p.GroupIDs = ids
	}
}

// ProductMapping is one row of the product/taxonomy many-to-many tables.
type ProductMapping struct {
	ID         string       `json:"id"`
	ProductID  string       `json:"product_id"`
	Kind       TaxonomyKind `json:"kind"`
	TaxonomyID string       `json:"taxonomy_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (m *ProductMapping) GetID() string           { return m.ID }
func (m *ProductMapping) GetName() string         { return string(m.Kind) + ":" + m.TaxonomyID }
func (m *ProductMapping) GetCreatedAt() time.Time { return m.CreatedAt }
func (m *ProductMapping) GetUpdatedAt() time.Time { return m.UpdatedAt }
func (m *ProductMapping) SetID(id string)         { m.ID = id }
func (m *ProductMapping) Stamp(now time.Time)     { stamp(&m.CreatedAt, &m.UpdatedAt, now) }
