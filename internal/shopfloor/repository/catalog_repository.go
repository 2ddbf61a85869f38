package repository

import (
	"path/filepath"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
)

var (
	assembliesHeader = []string{"assembly_sku", "name", "uom"}
	partsHeader      = []string{"part_sku", "name", "uom"}
	bomItemsHeader   = []string{"parent_assembly_sku", "component_sku", "qty_per", "scrap_rate", "yield_pct", "is_phantom"}
)

// CatalogRepository 只读目录数据：装配、零件、BOM。
type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) LoadAssemblies(dir string) ([]entity.Assembly, error) {
	path := filepath.Join(dir, AssembliesFile)
	rows, err := readTable(path, assembliesHeader)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Assembly, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Assembly{
			AssemblySKU: row[0],
			Name:        row[1],
			UOM:         row[2],
		})
	}
	return out, nil
}

func (r *CatalogRepository) LoadParts(dir string) ([]entity.Part, error) {
	path := filepath.Join(dir, PartsFile)
	rows, err := readTable(path, partsHeader)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Part, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Part{
			PartSKU: row[0],
			Name:    row[1],
			UOM:     row[2],
		})
	}
	return out, nil
}

func (r *CatalogRepository) LoadBomItems(dir string) ([]entity.BomItem, error) {
	path := filepath.Join(dir, BomItemsFile)
	rows, err := readTable(path, bomItemsHeader)
	if err != nil {
		return nil, err
	}
	out := make([]entity.BomItem, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		qtyPer, err := parseFloat(path, line, "qty_per", row[2])
		if err != nil {
			return nil, err
		}
		scrapRate, err := parseFloat(path, line, "scrap_rate", row[3])
		if err != nil {
			return nil, err
		}
		yieldPct, err := parseFloat(path, line, "yield_pct", row[4])
		if err != nil {
			return nil, err
		}
		isPhantom, err := parseBool(path, line, "is_phantom", row[5])
		if err != nil {
			return nil, err
		}
		out = append(out, entity.BomItem{
			ParentAssemblySKU: row[0],
			ComponentSKU:      row[1],
			QtyPer:            qtyPer,
			ScrapRate:         scrapRate,
			YieldPct:          yieldPct,
			IsPhantom:         isPhantom,
		})
	}
	return out, nil
}
