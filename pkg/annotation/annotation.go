package annotation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// Annotation wraps a kind with an identity and a source field.
type Annotation struct {
	ID string

	field     string
	kind      Kind
	persisted bool
}

// New creates an annotation with a fresh id.
func New(kind Kind) *Annotation {
	return &Annotation{ID: uuid.NewString(), kind: kind}
}

// NewForField creates an annotation over a source field.
func NewForField(field string, kind Kind) *Annotation {
	a := New(kind)
	a.SetField(field)
	return a
}

// Kind returns the annotation's kind, or nil when unset.
func (a *Annotation) Kind() Kind {
	return a.kind
}

// Type returns the discriminator of the annotation's kind.
func (a *Annotation) Type() Type {
	return typeOf(a.kind)
}

// SetKind replaces the kind. The kind of a persisted annotation is fixed.
func (a *Annotation) SetKind(k Kind) error {
	if a.persisted {
		return fmt.Errorf("%w: annotation %s is persisted, its kind cannot change", core.ErrValidation, a.ID)
	}
	a.kind = k
	return nil
}

// Persisted reports whether the annotation has been stored or read from a store.
func (a *Annotation) Persisted() bool {
	return a.persisted
}

// Name returns the display name of the kind.
func (a *Annotation) Name() string {
	if a.kind == nil {
		return ""
	}
	return a.kind.Common().Name
}

// Field returns the source field. A kind declaring a field property is the
// source of truth for it.
func (a *Annotation) Field() string {
	if Declares(a.kind, "field") {
		f, _ := Get(a.kind, "field").(string)
		return f
	}
	return a.field
}

// SetField sets the source field on the annotation and its kind.
func (a *Annotation) SetField(field string) {
	a.field = field
	if Declares(a.kind, "field") {
		_ = Set(a.kind, "field", field)
	}
}

// Describe returns the kind's non-zero property values keyed by id.
func (a *Annotation) Describe() map[string]any {
	return Describe(a.kind)
}

// Apply validates the kind and applies it to the model.
func (a *Annotation) Apply(ctx context.Context, model *olap.Model, store core.DocumentStore) (bool, error) {
	if a.kind == nil {
		return false, fmt.Errorf("%w: annotation %s has no kind", core.ErrValidation, a.ID)
	}
	if err := a.kind.Validate(); err != nil {
		return false, err
	}
	return a.kind.Apply(ctx, model, store)
}

// Measures filters the annotations that create measures.
func Measures(annotations []*Annotation) []*Annotation {
	return filterType(annotations, TypeCreateMeasure)
}

// Attributes filters the annotations that create attributes.
func Attributes(annotations []*Annotation) []*Annotation {
	return filterType(annotations, TypeCreateAttribute)
}

func filterType(annotations []*Annotation, t Type) []*Annotation {
	var out []*Annotation
	for _, a := range annotations {
		if a.Type() == t {
			out = append(out, a)
		}
	}
	return out
}
