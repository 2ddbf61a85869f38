package repository

import (
	"path/filepath"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
)

var mainInventoryHeader = []string{
	"sku", "name", "uom", "on_hand_qty", "reserved_qty",
	"available_qty", "reorder_point", "supplier",
}

// InventoryRepository 主库存表：与 parts+stock 派生视图不同，
// main_inventory.csv 是补货点、供应商等扩展字段的唯一来源，
// 因此该文件缺失是致命错误而非可选。
type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

func (r *InventoryRepository) LoadMain(dir string) ([]entity.InventoryItem, error) {
	path := filepath.Join(dir, MainInventoryFile)
	rows, err := readTable(path, mainInventoryHeader)
	if err != nil {
		return nil, err
	}
	out := make([]entity.InventoryItem, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		onHand, err := parseFloat(path, line, "on_hand_qty", row[3])
		if err != nil {
			return nil, err
		}
		reserved, err := parseFloat(path, line, "reserved_qty", row[4])
		if err != nil {
			return nil, err
		}
		// available_qty 列仅存档，加载后由服务层重算，不信任文件值
		if row[5] != "" {
			if _, err := parseFloat(path, line, "available_qty", row[5]); err != nil {
				return nil, err
			}
		}
		var reorderPoint *float64
		if row[6] != "" {
			v, err := parseFloat(path, line, "reorder_point", row[6])
			if err != nil {
				return nil, err
			}
			reorderPoint = &v
		}
		out = append(out, entity.InventoryItem{
			SKU:          row[0],
			Name:         row[1],
			UOM:          row[2],
			OnHandQty:    onHand,
			ReservedQty:  reserved,
			ReorderPoint: reorderPoint,
			Supplier:     row[7],
		})
	}
	return out, nil
}
