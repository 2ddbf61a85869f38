package service

import (
	"fmt"
	"time"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/repository"
	"github.com/xuri/excelize/v2"
)

type InventoryService struct {
	repo *repository.InventoryRepository
}

func NewInventoryService(repo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// UnifyInventory 派生库存视图：每个零件按SKU联结库存行，
// 没有库存行的零件按0处理，不算错误。输出顺序与零件列表一致，
// available 一律现算。
func UnifyInventory(parts []entity.Part, stock []entity.StockRow) []entity.InventoryItem {
	bySKU := make(map[string]entity.StockRow, len(stock))
	for _, s := range stock {
		bySKU[s.SKU] = s
	}

	items := make([]entity.InventoryItem, 0, len(parts))
	for _, p := range parts {
		s := bySKU[p.PartSKU] // 缺失时为零值
		items = append(items, entity.InventoryItem{
			SKU:          p.PartSKU,
			Name:         p.Name,
			UOM:          p.UOM,
			OnHandQty:    s.OnHandQty,
			ReservedQty:  s.ReservedQty,
			AvailableQty: s.OnHandQty - s.ReservedQty,
		})
	}
	return items
}

// LoadMain 主库存加载路径：直接读 main_inventory.csv，
// 只重算 available，保留补货点与供应商字段。文件缺失为致命错误。
func (s *InventoryService) LoadMain(dir string) ([]entity.InventoryItem, error) {
	if err := checkDataDir(dir); err != nil {
		return nil, err
	}
	items, err := s.repo.LoadMain(dir)
	if err != nil {
		return nil, fmt.Errorf("读取主库存失败: %w", err)
	}
	for i := range items {
		items[i].AvailableQty = items[i].OnHandQty - items[i].ReservedQty
	}
	return items, nil
}

var inventoryExportHeaders = []string{
	"SKU", "名称", "单位", "在库数量", "预留数量", "可用数量", "补货点", "供应商",
}

// ExportXLSX 导出库存为xlsx
func (s *InventoryService) ExportXLSX(items []entity.InventoryItem) (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheet := "库存"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range inventoryExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.UOM)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.OnHandQty)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.ReservedQty)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.AvailableQty)
		if item.ReorderPoint != nil {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), *item.ReorderPoint)
		}
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.Supplier)
	}

	// 底部汇总行
	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "汇总")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("总SKU数: %d", len(items)))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	colWidths := []float64{16, 24, 8, 12, 12, 12, 10, 20}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("库存_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
