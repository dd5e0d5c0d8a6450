// Package repo contains all spreadsheet access for the parking roster.
// SheetRepo is the gateway to the shared spreadsheet; each backend lives in
// its own file. No business logic lives here, only tab and cell plumbing.
package repo

import (
	"context"

	"github.com/pkordes/parking-roster/internal/domain"
)

// SheetRepo defines the operations the roster needs from the shared
// spreadsheet. The service layer depends on this interface, not on a
// concrete backend, which lets it be unit-tested with a mock.
type SheetRepo interface {
	// ReadAll returns every row of the named tab, header row at index 0.
	// Returns domain.ErrNotFound if the tab does not exist.
	ReadAll(ctx context.Context, tab string) ([][]string, error)

	// ListTabs returns every tab of the spreadsheet in sheet order.
	ListTabs(ctx context.Context) ([]domain.Tab, error)

	// EnsureTab returns the tab titled title, creating it if absent.
	// An existing tab is cleared before it is returned. rows is a sizing
	// hint for backends that need a grid size up front.
	EnsureTab(ctx context.Context, title string, rows int) (domain.Tab, error)

	// Clear removes every value from tab.
	Clear(ctx context.Context, tab domain.Tab) error

	// Write overwrites tab with values starting at the top-left cell.
	// The first row holds the header labels.
	Write(ctx context.Context, tab domain.Tab, values [][]string) error
}

// gridColumns is the column count given to newly created tabs.
const gridColumns = 20

// spareRows is added to the row hint when a new tab is created so staff
// have room for manual additions.
const spareRows = 10
