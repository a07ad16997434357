package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

// ApplyError reports the annotation at which group application stopped.
// Annotations before Index were applied and remain in effect.
type ApplyError struct {
	Group string
	Index int
	ID    string
	Type  Type
	Err   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("failed to apply annotation %d (%s %s) of group %q: %v", e.Index, e.Type, e.ID, e.Group, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Manager persists annotation groups and connection metadata in a document
// store, and applies groups to models. A manager serves either ordinary
// groups or shared-dimension groups.
type Manager struct {
	shared bool
	codec  *XMLCodec
	logger *slog.Logger
	now    func() time.Time
}

// NewManager creates a manager for ordinary groups.
func NewManager(logger *slog.Logger) *Manager {
	return newManager(false, logger)
}

// NewSharedDimensionManager creates a manager for shared-dimension groups.
func NewSharedDimensionManager(logger *slog.Logger) *Manager {
	return newManager(true, logger)
}

func newManager(shared bool, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{shared: shared, codec: NewXMLCodec(logger), logger: logger, now: time.Now}
}

// Namespace returns the store namespace the manager's groups live in.
func (m *Manager) Namespace() core.Namespace {
	if m.shared {
		return core.NamespaceSharedDimensions
	}
	return core.NamespaceAnnotationGroups
}

// CreateGroup stores a group, replacing any group with the same name.
// Its annotations are marked persisted.
func (m *Manager) CreateGroup(ctx context.Context, g *Group, store core.DocumentStore) error {
	if g == nil || g.Name == "" {
		return fmt.Errorf("%w: group name is required", core.ErrValidation)
	}
	data, err := m.codec.Encode(g)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, m.Namespace(), g.Name, data); err != nil {
		return fmt.Errorf("failed to store group %q: %w", g.Name, err)
	}
	g.markPersisted()
	m.logger.Debug("stored annotation group", "namespace", m.Namespace(), "group", g.Name, "annotations", g.Len())
	return nil
}

// ReadGroup loads a group by name.
func (m *Manager) ReadGroup(ctx context.Context, name string, store core.DocumentStore) (*Group, error) {
	data, err := store.Get(ctx, m.Namespace(), name)
	if err != nil {
		return nil, fmt.Errorf("failed to read group %q: %w", name, err)
	}
	g, err := m.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode group %q: %w", name, err)
	}
	g.Name = name
	g.shared = m.shared
	return g, nil
}

// ListGroupNames returns the stored group names, sorted.
func (m *Manager) ListGroupNames(ctx context.Context, store core.DocumentStore) ([]string, error) {
	names, err := store.List(ctx, m.Namespace())
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return names, nil
}

// ListGroups loads every stored group, sorted by name.
func (m *Manager) ListGroups(ctx context.Context, store core.DocumentStore) ([]*Group, error) {
	names, err := m.ListGroupNames(ctx, store)
	if err != nil {
		return nil, err
	}
	groups := make([]*Group, 0, len(names))
	for _, name := range names {
		g, err := m.ReadGroup(ctx, name, store)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ContainsGroup reports whether a group is stored. Store failures are logged
// and reported as absent.
func (m *Manager) ContainsGroup(ctx context.Context, name string, store core.DocumentStore) bool {
	if name == "" {
		return false
	}
	if _, err := store.Get(ctx, m.Namespace(), name); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			m.logger.Warn("unable to check for group", "group", name, "error", err)
		}
		return false
	}
	return true
}

// DeleteGroup removes a group. Removing a missing group is not an error.
func (m *Manager) DeleteGroup(ctx context.Context, name string, store core.DocumentStore) error {
	if err := store.Delete(ctx, m.Namespace(), name); err != nil {
		return fmt.Errorf("failed to delete group %q: %w", name, err)
	}
	return nil
}

// DeleteAllGroups removes every group in the manager's namespace.
func (m *Manager) DeleteAllGroups(ctx context.Context, store core.DocumentStore) error {
	names, err := m.ListGroupNames(ctx, store)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := m.DeleteGroup(ctx, name, store); err != nil {
			return err
		}
	}
	return nil
}

// StoreDatabaseMeta stores connection metadata under its name, replacing an
// existing entry, and returns the reference to use as databaseMetaRef.
func (m *Manager) StoreDatabaseMeta(ctx context.Context, meta *core.DatabaseMeta, store core.DocumentStore) (string, error) {
	if meta == nil || meta.Name == "" {
		return "", fmt.Errorf("%w: connection name is required", core.ErrValidation)
	}
	meta.ChangedDate = m.now().UTC().Truncate(time.Second)
	data, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to encode connection %q: %w", meta.Name, err)
	}
	if err := store.Put(ctx, core.NamespaceDatabaseMeta, meta.Name, data); err != nil {
		return "", fmt.Errorf("failed to store connection %q: %w", meta.Name, err)
	}
	return meta.Name, nil
}

// LoadDatabaseMeta loads connection metadata by reference.
func (m *Manager) LoadDatabaseMeta(ctx context.Context, ref string, store core.DocumentStore) (*core.DatabaseMeta, error) {
	data, err := store.Get(ctx, core.NamespaceDatabaseMeta, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read connection %q: %w", ref, err)
	}
	var meta core.DatabaseMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: connection %q: %w", core.ErrCodec, ref, err)
	}
	return &meta, nil
}

// ApplyGroup applies the group's annotations to the model in order. Each
// annotation must be applicable to the annotations before it. Application
// stops at the first failure, returned as an *ApplyError; earlier
// annotations stay applied.
func (m *Manager) ApplyGroup(ctx context.Context, g *Group, model *olap.Model, store core.DocumentStore) error {
	for i, a := range g.annotations {
		if err := ctx.Err(); err != nil {
			return err
		}
		valueType := core.DataTypeNone
		if col, err := model.Column(a.Field()); err == nil {
			valueType = col.DataType
		}
		if !IsApplicable(g.prefix(i), a, valueType) {
			return &ApplyError{
				Group: g.Name, Index: i, ID: a.ID, Type: a.Type(),
				Err: fmt.Errorf("%w: %s is not applicable here", core.ErrValidation, a.Type()),
			}
		}
		changed, err := a.Apply(ctx, model, store)
		if err != nil {
			return &ApplyError{Group: g.Name, Index: i, ID: a.ID, Type: a.Type(), Err: err}
		}
		m.logger.Debug("applied annotation", "group", g.Name, "index", i, "type", a.Type(), "changed", changed)
	}
	return nil
}

// ApplyGroupByName reads a stored group and applies it to the model.
func (m *Manager) ApplyGroupByName(ctx context.Context, name string, model *olap.Model, store core.DocumentStore) error {
	g, err := m.ReadGroup(ctx, name, store)
	if err != nil {
		return err
	}
	return m.ApplyGroup(ctx, g, model, store)
}
