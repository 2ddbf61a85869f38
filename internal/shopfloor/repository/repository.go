package repository

// Repositories 数据目录仓库集合
type Repositories struct {
	Catalog   *CatalogRepository
	Stock     *StockRepository
	History   *HistoryRepository
	Inventory *InventoryRepository
	Locker    *DirLocker
}

func NewRepositories() *Repositories {
	return &Repositories{
		Catalog:   NewCatalogRepository(),
		Stock:     NewStockRepository(),
		History:   NewHistoryRepository(),
		Inventory: NewInventoryRepository(),
		Locker:    NewDirLocker(),
	}
}
