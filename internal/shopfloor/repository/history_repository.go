package repository

import (
	"path/filepath"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
)

var historyHeader = []string{
	"id", "timestamp", "work_order", "sales_order", "customer",
	"assembly_sku", "quantity_built", "operator", "notes",
}

// HistoryRepository 生产历史：两份只追加日志（build_history / panel_history），
// 同一事件写入两个命名落点，各自独立可失败。
type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func historyRow(rec *entity.BuildHistoryRecord) []string {
	return []string{
		rec.ID,
		rec.Timestamp,
		rec.WorkOrder,
		rec.SalesOrder,
		rec.Customer,
		rec.AssemblySKU,
		formatFloat(rec.QuantityBuilt),
		rec.Operator,
		rec.Notes,
	}
}

// AppendBuild 追加到主历史日志
func (r *HistoryRepository) AppendBuild(dir string, rec *entity.BuildHistoryRecord) error {
	return appendRow(filepath.Join(dir, BuildHistoryFile), historyHeader, historyRow(rec))
}

// AppendPanel 追加到面板历史日志
func (r *HistoryRepository) AppendPanel(dir string, rec *entity.BuildHistoryRecord) error {
	return appendRow(filepath.Join(dir, PanelHistoryFile), historyHeader, historyRow(rec))
}

// LoadBuild 读取主历史日志。来源可选：文件缺失或无法解析时返回空列表而非报错。
func (r *HistoryRepository) LoadBuild(dir string) []entity.BuildHistoryRecord {
	return r.loadOptional(filepath.Join(dir, BuildHistoryFile))
}

// LoadPanel 读取面板历史日志，同样为可选来源。
func (r *HistoryRepository) LoadPanel(dir string) []entity.BuildHistoryRecord {
	return r.loadOptional(filepath.Join(dir, PanelHistoryFile))
}

func (r *HistoryRepository) loadOptional(path string) []entity.BuildHistoryRecord {
	rows, err := readTable(path, historyHeader)
	if err != nil {
		return []entity.BuildHistoryRecord{}
	}
	out := make([]entity.BuildHistoryRecord, 0, len(rows))
	for i, row := range rows {
		qty, err := parseFloat(path, i+2, "quantity_built", row[6])
		if err != nil {
			return []entity.BuildHistoryRecord{}
		}
		out = append(out, entity.BuildHistoryRecord{
			ID:            row[0],
			Timestamp:     row[1],
			WorkOrder:     row[2],
			SalesOrder:    row[3],
			Customer:      row[4],
			AssemblySKU:   row[5],
			QuantityBuilt: qty,
			Operator:      row[7],
			Notes:         row[8],
		})
	}
	return out
}
