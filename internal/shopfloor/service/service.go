package service

import (
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/repository"
	"go.uber.org/zap"
)

// Services 车间服务集合
type Services struct {
	Snapshot  *SnapshotService
	Inventory *InventoryService
	Build     *BuildService
}

func NewServices(repos *repository.Repositories, logger *zap.Logger) *Services {
	snapshotSvc := NewSnapshotService(repos.Catalog, repos.Stock, repos.History)
	return &Services{
		Snapshot:  snapshotSvc,
		Inventory: NewInventoryService(repos.Inventory),
		Build:     NewBuildService(snapshotSvc, repos.Stock, repos.History, repos.Locker, logger),
	}
}
