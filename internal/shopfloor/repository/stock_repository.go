package repository

import (
	"path/filepath"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
)

var stockHeader = []string{"sku", "on_hand_qty", "reserved_qty"}

// StockRepository 库存台账：stock.csv 是本系统唯一会改写的目录文件，
// 每次生产记录后整表重写。
type StockRepository struct{}

func NewStockRepository() *StockRepository {
	return &StockRepository{}
}

func (r *StockRepository) Load(dir string) ([]entity.StockRow, error) {
	path := filepath.Join(dir, StockFile)
	rows, err := readTable(path, stockHeader)
	if err != nil {
		return nil, err
	}
	out := make([]entity.StockRow, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		onHand, err := parseFloat(path, line, "on_hand_qty", row[1])
		if err != nil {
			return nil, err
		}
		reserved, err := parseFloat(path, line, "reserved_qty", row[2])
		if err != nil {
			return nil, err
		}
		out = append(out, entity.StockRow{
			SKU:         row[0],
			OnHandQty:   onHand,
			ReservedQty: reserved,
		})
	}
	return out, nil
}

// Rewrite 按传入顺序整表重写 stock.csv（临时文件+重命名，原子替换）。
func (r *StockRepository) Rewrite(dir string, stock []entity.StockRow) error {
	rows := make([][]string, 0, len(stock))
	for _, s := range stock {
		rows = append(rows, []string{s.SKU, formatFloat(s.OnHandQty), formatFloat(s.ReservedQty)})
	}
	return writeTable(filepath.Join(dir, StockFile), stockHeader, rows)
}
