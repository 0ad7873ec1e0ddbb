// Package dataset maps the named flat files of the data directory to typed rows.
package dataset

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/ecom-prep/internal/model"
	"github.com/sells-group/ecom-prep/internal/tabular"
)

// Flat file names, without extension.
const (
	Orders           = "Orders"
	OrderItems       = "Order_Items"
	Products         = "Products"
	Customers        = "Customers"
	Transactions     = "Transactions"
	BehavioralData   = "Behavioral_Data"
	Tracking         = "Tracking"
	OrdersMaster     = "Orders_Master"
	CustomerBehavior = "Customer_Behavior"
	OrdersSegmented  = "Orders_Segmented"
)

// Dir is a data directory. Inputs are read as CSV or XLSX, whichever exists;
// outputs are written in Format.
type Dir struct {
	Root   string
	Format tabular.Format
}

// NewDir returns a Dir writing CSV unless format says otherwise.
func NewDir(root string, format tabular.Format) Dir {
	if format == "" {
		format = tabular.FormatCSV
	}
	return Dir{Root: root, Format: format}
}

// Locate returns the path of an existing file for name, preferring CSV.
func (d Dir) Locate(name string) (string, error) {
	for _, ext := range []string{".csv", ".xlsx"} {
		p := filepath.Join(d.Root, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", eris.Errorf("dataset: %s not found in %s", name, d.Root)
}

// OutputPath returns where name is written.
func (d Dir) OutputPath(name string) string {
	return filepath.Join(d.Root, name+d.Format.Ext())
}

// Read loads the named table.
func (d Dir) Read(ctx context.Context, name string) (*tabular.Table, error) {
	p, err := d.Locate(name)
	if err != nil {
		return nil, err
	}
	t, err := tabular.Read(ctx, p)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", name)
	}
	zap.L().Debug("dataset: loaded table", zap.String("name", name), zap.Int("rows", t.Len()))
	return t, nil
}

// Write stores the named table and returns the written path.
func (d Dir) Write(name string, t *tabular.Table) (string, error) {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return "", eris.Wrapf(err, "dataset: create %s", d.Root)
	}
	p := d.OutputPath(name)
	if err := tabular.Write(p, t); err != nil {
		return "", eris.Wrapf(err, "dataset: write %s", name)
	}
	zap.L().Info("dataset: wrote table", zap.String("name", name), zap.String("path", p), zap.Int("rows", t.Len()))
	return p, nil
}

// LoadInputs reads the tables the order reconciliation needs. Files are
// independent, so they are read concurrently; any missing file is fatal.
func (d Dir) LoadInputs(ctx context.Context) (*model.Inputs, error) {
	in := &model.Inputs{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := d.Read(gCtx, Orders)
		if err != nil {
			return err
		}
		in.Orders, err = DecodeOrders(t)
		return err
	})
	g.Go(func() error {
		t, err := d.Read(gCtx, OrderItems)
		if err != nil {
			return err
		}
		in.Items, err = DecodeOrderItems(t)
		return err
	})
	g.Go(func() error {
		t, err := d.Read(gCtx, Products)
		if err != nil {
			return err
		}
		in.Products, err = DecodeProducts(t)
		return err
	})
	g.Go(func() error {
		t, err := d.Read(gCtx, Transactions)
		if err != nil {
			return err
		}
		in.Transactions, err = DecodeTransactions(t)
		return err
	})
	g.Go(func() error {
		t, err := d.Read(gCtx, BehavioralData)
		if err != nil {
			return err
		}
		in.Events, err = DecodeEvents(t)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "dataset: load inputs")
	}
	return in, nil
}
