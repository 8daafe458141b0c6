package xlsxmaster

import (
	"os"
	"path/filepath"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/opc"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/parser"
)

// InspectCharts reports the charts of every worksheet in a package.
func InspectCharts(data []byte) (*models.WorkbookCharts, error) {
	pkg, err := opc.Open(data)
	if err != nil {
		return nil, err
	}
	return parser.ExtractCharts(pkg)
}

// InspectFile is InspectCharts for a file on disk. BookName is set to the
// file's base name.
func InspectFile(path string) (*models.WorkbookCharts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	wb, err := InspectCharts(data)
	if err != nil {
		return nil, err
	}
	wb.BookName = filepath.Base(path)
	return wb, nil
}
