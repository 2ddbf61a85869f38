package service

import (
	"fmt"
	"time"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BuildService struct {
	snapshotSvc *SnapshotService
	stockRepo   *repository.StockRepository
	historyRepo *repository.HistoryRepository
	locker      *repository.DirLocker
	logger      *zap.Logger
}

func NewBuildService(
	snapshotSvc *SnapshotService,
	stockRepo *repository.StockRepository,
	historyRepo *repository.HistoryRepository,
	locker *repository.DirLocker,
	logger *zap.Logger,
) *BuildService {
	return &BuildService{
		snapshotSvc: snapshotSvc,
		stockRepo:   stockRepo,
		historyRepo: historyRepo,
		locker:      locker,
		logger:      logger,
	}
}

type RecordBuildRequest struct {
	WorkOrder     string  `json:"work_order"`
	SalesOrder    string  `json:"sales_order"`
	Customer      string  `json:"customer"`
	AssemblySKU   string  `json:"assembly_sku" binding:"required"`
	QuantityBuilt float64 `json:"quantity_built"`
	Operator      string  `json:"operator"`
	Notes         string  `json:"notes"`
}

// RecordBuild 记录一次生产：生成不可变历史记录并双写两份日志，
// 然后按BOM展开扣减库存、整表重写 stock.csv，最后重载快照返回。
// 整个序列持有目录锁，同目录并发生产不会互相覆盖。
// 任一步失败即中止后续步骤，已完成的追加不回滚（历史与库存可能不一致）。
func (s *BuildService) RecordBuild(dir string, req RecordBuildRequest) (*entity.DataSnapshot, error) {
	release := s.locker.Acquire(dir)
	defer release()

	if err := checkDataDir(dir); err != nil {
		return nil, err
	}

	rec := &entity.BuildHistoryRecord{
		ID:            uuid.New().String(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		WorkOrder:     req.WorkOrder,
		SalesOrder:    req.SalesOrder,
		Customer:      req.Customer,
		AssemblySKU:   req.AssemblySKU,
		QuantityBuilt: req.QuantityBuilt,
		Operator:      req.Operator,
		Notes:         req.Notes,
	}

	if err := s.historyRepo.AppendBuild(dir, rec); err != nil {
		return nil, fmt.Errorf("写入生产历史失败: %w", err)
	}
	if err := s.historyRepo.AppendPanel(dir, rec); err != nil {
		return nil, fmt.Errorf("写入面板历史失败: %w", err)
	}

	snap, err := s.snapshotSvc.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("加载数据失败: %w", err)
	}

	need := ExplodeRequirements(snap.BomItems, req.AssemblySKU, req.QuantityBuilt)
	ApplyConsumption(snap.Stock, need)
	if err := s.stockRepo.Rewrite(dir, snap.Stock); err != nil {
		return nil, fmt.Errorf("更新库存失败: %w", err)
	}

	s.logger.Info("生产已记录",
		zap.String("id", rec.ID),
		zap.String("assembly_sku", rec.AssemblySKU),
		zap.Float64("quantity_built", rec.QuantityBuilt),
		zap.Int("components", len(need)),
	)

	updated, err := s.snapshotSvc.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("重载数据失败: %w", err)
	}
	return updated, nil
}

// Buildability 当前库存下某装配的最大整数可建量
func (s *BuildService) Buildability(dir, assemblySKU string, respectReservations bool) (*entity.Buildability, error) {
	snap, err := s.snapshotSvc.Load(dir)
	if err != nil {
		return nil, err
	}
	req := RequirementsPerUnit(snap.BomItems, assemblySKU)
	return ComputeBuildability(req, snap.Stock, respectReservations), nil
}
