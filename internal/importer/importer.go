package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"partsite/internal/catalog"
	"partsite/internal/logging"
)

// Catalog is the subset of catalog.Store the importer writes through.
type Catalog interface {
	FindByKey(ctx context.Context, key catalog.NaturalKey) (*catalog.Part, error)
	Create(ctx context.Context, id string, key catalog.NaturalKey, attrs catalog.Attributes) (*catalog.Part, error)
	Update(ctx context.Context, id string, attrs catalog.Attributes) error
}

// IDGenerator mints surrogate identifiers for new parts.
type IDGenerator func() string

// Importer reconciles descriptors into a Catalog.
type Importer struct {
	store  Catalog
	logger *slog.Logger
	newID  IDGenerator
}

// Option customizes an Importer.
type Option func(*Importer)

// WithIDGenerator replaces the random UUIDv4 generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(i *Importer) {
		if gen != nil {
			i.newID = gen
		}
	}
}

// New constructs an Importer writing to store.
func New(store Catalog, logger *slog.Logger, opts ...Option) *Importer {
	imp := &Importer{
		store:  store,
		logger: logging.NewComponentLogger(logger, "importer"),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Run imports every descriptor under root. Descriptor errors are recorded in
// the result and skipped; the first catalog error stops the run and is
// returned alongside the partial result.
func (i *Importer) Run(ctx context.Context, root string) (Result, error) {
	entries, err := Scan(root)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		outcome, err := i.ImportFile(ctx, entry)
		if err != nil {
			var descErr *DescriptorError
			if errors.As(err, &descErr) {
				result.add(entry, OutcomeSkipped, "", descErr)
				continue
			}
			return result, err
		}
		result.add(entry, outcome.Kind, outcome.UUID, nil)
	}
	return result, nil
}

// Outcome describes what reconciliation did with one descriptor.
type Outcome struct {
	Kind OutcomeKind
	UUID string
}

// ImportFile parses a single descriptor and reconciles it. Parse failures are
// logged and returned as *DescriptorError; catalog failures are returned
// wrapped.
func (i *Importer) ImportFile(ctx context.Context, entry Entry) (Outcome, error) {
	attrs, err := LoadDescriptor(entry.Path)
	if err != nil {
		descErr := &DescriptorError{Path: entry.Path, Key: entry.Key, Err: err}
		i.logger.Warn("unable to load part",
			append(keyArgs(entry.Key), logging.String(logging.FieldPath, entry.Path), logging.Error(err))...,
		)
		return Outcome{Kind: OutcomeSkipped}, descErr
	}

	outcome, err := i.Reconcile(ctx, entry.Key, attrs)
	if err != nil {
		return outcome, err
	}
	i.logger.Info("imported",
		append(keyArgs(entry.Key), logging.String("outcome", string(outcome.Kind)))...,
	)
	return outcome, nil
}

// Reconcile creates or updates the part stored under key. An existing part
// keeps its UUID and counter; a new part gets a fresh UUID. A collision of
// the fresh UUID with an existing part is not retried and surfaces as a
// catalog error.
func (i *Importer) Reconcile(ctx context.Context, key catalog.NaturalKey, attrs catalog.Attributes) (Outcome, error) {
	attrs.Fits = catalog.NormalizeFits(attrs.Fits)

	existing, err := i.store.FindByKey(ctx, key)
	if err != nil {
		return Outcome{}, fmt.Errorf("look up %s: %w", key, err)
	}
	if existing != nil {
		if err := i.store.Update(ctx, existing.UUID, attrs); err != nil {
			return Outcome{}, fmt.Errorf("update %s: %w", key, err)
		}
		return Outcome{Kind: OutcomeUpdated, UUID: existing.UUID}, nil
	}

	id := i.newID()
	part, err := i.store.Create(ctx, id, key, attrs)
	if err != nil {
		return Outcome{}, fmt.Errorf("create %s: %w", key, err)
	}
	i.logger.Info("created with uuid",
		append(keyArgs(key), logging.String(logging.FieldUUID, part.UUID))...,
	)
	return Outcome{Kind: OutcomeCreated, UUID: part.UUID}, nil
}

func keyArgs(key catalog.NaturalKey) []any {
	return logging.Args(
		logging.String(logging.FieldSystem, key.System),
		logging.String(logging.FieldDevice, key.Device),
		logging.String(logging.FieldPart, key.Part),
	)
}
