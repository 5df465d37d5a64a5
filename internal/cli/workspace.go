package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/icview/pkg/errors"
	"github.com/matzehuels/icview/pkg/icdata"
	icio "github.com/matzehuels/icview/pkg/io"
	"github.com/matzehuels/icview/pkg/layout/memdb"
)

// workspace is a loaded layout session plus its classified layer data.
type workspace struct {
	db   *memdb.Database
	data *icdata.LayoutData
}

func (w *workspace) Close() error { return w.db.Close() }

// openSession imports the --layout file into a new memdb session.
func (c *CLI) openSession(ctx context.Context) (*memdb.Database, error) {
	if c.layoutPath == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no layout given (use --layout)")
	}
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	db, err := icio.ImportLayout(c.layoutPath, memdb.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %s", c.layoutPath))
	logger.Debug("session opened", "id", db.ID())
	return db, nil
}

// layerRules loads the resolved layer map, or returns nil when none is
// configured.
func (c *CLI) layerRules(ctx context.Context) ([]icdata.LayerRule, error) {
	path := c.resolveLayerMap()
	if path == "" {
		loggerFromContext(ctx).Debug("no layer map, using default purpose", "purpose", icdata.DefaultPurpose)
		return nil, nil
	}
	rules, err := icio.ImportLayerMap(path)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("layer map loaded", "path", path, "rules", len(rules))
	return rules, nil
}

// openWorkspace opens the layout and loads every mapped layer. opts apply
// to every layer after the layer map's settings.
func (c *CLI) openWorkspace(ctx context.Context, opts ...icdata.LayerOption) (*workspace, error) {
	rules, err := c.layerRules(ctx)
	if err != nil {
		return nil, err
	}
	db, err := c.openSession(ctx)
	if err != nil {
		return nil, err
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	layerOpts := append([]icdata.LayerOption{icdata.WithLogger(logger)}, opts...)
	data, err := icdata.LoadLayoutData(db, rules, layerOpts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	prog.done(fmt.Sprintf("Classified %d layers", len(data.Layers())))
	return &workspace{db: db, data: data}, nil
}
