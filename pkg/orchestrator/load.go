package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-docdantic/pkg/schema"
)

// LoadRequest describes a declaration document to register.
type LoadRequest struct {
	// Namespace is the registry namespace the declarations are added under.
	Namespace string
	// Source identifies the document. Optional when Document is set.
	Source schema.Source
	// Document bypasses the loader when the payload is already in memory.
	Document *schema.Document
	// Format names the adapter ("openapi", "jsonschema"). Empty means detect.
	Format string
}

// Load reads a declaration document and registers its declarations. It
// returns the registered paths.
func (o *Orchestrator) Load(ctx context.Context, req LoadRequest) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Namespace) == "" {
		return nil, errors.New("orchestrator: namespace is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	adapter, err := o.resolveAdapter(req.Format, doc)
	if err != nil {
		return nil, err
	}

	decls, err := adapter.Declarations(ctx, req.Namespace, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %s declarations: %w", adapter.Name(), err)
	}
	if err := o.registry.Register(req.Namespace, decls...); err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	paths := make([]string, 0, len(decls))
	for _, decl := range decls {
		paths = append(paths, req.Namespace+"."+decl.Name)
	}
	o.logger.WithField("namespace", req.Namespace).
		WithField("format", adapter.Name()).
		WithField("location", doc.Location()).
		WithField("declarations", len(paths)).
		Debug("declarations registered")
	return paths, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req LoadRequest) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveAdapter(format string, doc schema.Document) (schema.FormatAdapter, error) {
	if strings.TrimSpace(format) != "" {
		return o.adapters.Get(format)
	}

	matches := o.adapters.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("orchestrator: unable to detect format of %s", doc.Location())
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, match := range matches {
			names = append(names, match.Name())
		}
		return nil, fmt.Errorf("orchestrator: multiple adapters matched %s (%s), specify format", doc.Location(), strings.Join(names, ", "))
	}
}
