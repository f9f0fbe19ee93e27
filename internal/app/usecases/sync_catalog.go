package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"omnia-sync/internal/adapters/omnia"
	"omnia-sync/internal/adapters/woocommerce"
	"omnia-sync/internal/batch"
	"omnia-sync/internal/config"
	"omnia-sync/internal/domain/model"
	"omnia-sync/internal/logging"
	"omnia-sync/internal/pagination"
	"omnia-sync/internal/retry"
	"omnia-sync/internal/sku"
	"omnia-sync/internal/state"
)

// ErrSyncInProgress is returned when a pass is requested while another one
// is still running. Callers map it to 409.
var ErrSyncInProgress = errors.New("catalog sync already in progress")

// CatalogSyncer drives one full reconciliation pass: fetch both sides,
// plan, apply the three lanes, verify, report.
type CatalogSyncer struct {
	erp     omnia.CatalogService
	store   woocommerce.ProductService
	runs    *state.RunStore
	logger  logging.LoggerService
	syncCfg config.SyncConfig

	running atomic.Bool
}

func NewCatalogSyncer(
	erp omnia.CatalogService,
	store woocommerce.ProductService,
	runs *state.RunStore,
	syncCfg config.SyncConfig,
	logger logging.LoggerService,
) *CatalogSyncer {
	return &CatalogSyncer{
		erp:     erp,
		store:   store,
		runs:    runs,
		logger:  logger,
		syncCfg: syncCfg,
	}
}

type fetchSnapshot struct {
	products    pagination.Result[model.Product]
	stocks      pagination.Result[model.StockEntry]
	prices      pagination.Result[model.PriceEntry]
	wooProducts pagination.Result[model.WooProduct]
}

// Run executes one pass and returns its report. Only one pass runs at a
// time per process; overlapping calls get ErrSyncInProgress.
func (s *CatalogSyncer) Run(ctx context.Context, triggeredBy string) (model.SyncReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return model.SyncReport{}, ErrSyncInProgress
	}
	defer s.running.Store(false)

	report := model.SyncReport{PassID: uuid.NewString()}
	started := time.Now()

	s.logger.Log(fmt.Sprintf("starting catalog sync pass %s (trigger: %s)", report.PassID, triggeredBy))
	if err := s.runs.StartRun(ctx, report.PassID, triggeredBy); err != nil {
		s.logger.LogWarning(fmt.Sprintf("could not record sync run start: %v", err))
	}

	snapshot, err := s.fetchAll(ctx)
	if err != nil {
		report.Duration = time.Since(started)
		s.finishRun(report, err)
		return report, err
	}

	report.PartialFetch = snapshot.products.Partial() ||
		snapshot.stocks.Partial() ||
		snapshot.prices.Partial() ||
		snapshot.wooProducts.Partial()
	if report.PartialFetch {
		s.logger.LogWarning(fmt.Sprintf(
			"pass %s running on a partial snapshot (lost pages: products=%v stock=%v prices=%v woo=%v)",
			report.PassID, snapshot.products.FailedPages, snapshot.stocks.FailedPages,
			snapshot.prices.FailedPages, snapshot.wooProducts.FailedPages,
		))
	}

	plan := ComputePlan(snapshot.products.Records, snapshot.wooProducts.Records, snapshot.stocks.Records, snapshot.prices.Records)
	report.Skipped = len(plan.SkippedNoPrice)
	report.Unchanged = plan.Unchanged
	for _, skipped := range plan.SkippedNoPrice {
		s.logger.LogWarning(fmt.Sprintf("sku %s has no price row, skipping", skipped))
	}

	s.applyPlan(ctx, plan, snapshot, &report)

	s.verify(ctx, snapshot, &report)

	report.Duration = time.Since(started)
	s.finishRun(report, nil)
	s.logger.LogSuccess(fmt.Sprintf(
		"pass %s done in %s: created=%d updated=%d deleted=%d failed=%d skipped=%d unchanged=%d",
		report.PassID, report.Duration.Round(time.Millisecond),
		report.Created, report.Updated, report.Deleted,
		report.Failed, report.Skipped, report.Unchanged,
	))
	return report, nil
}

// fetchAll drains the four source endpoints concurrently. Any hard failure
// (page 1 unreachable after retries) aborts the pass.
func (s *CatalogSyncer) fetchAll(ctx context.Context) (fetchSnapshot, error) {
	var snapshot fetchSnapshot
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		snapshot.products, err = s.erp.FetchProducts(ctx)
		return err
	})
	group.Go(func() error {
		var err error
		snapshot.stocks, err = s.erp.FetchStock(ctx)
		return err
	})
	group.Go(func() error {
		var err error
		snapshot.prices, err = s.erp.FetchPrices(ctx)
		return err
	})
	group.Go(func() error {
		var err error
		snapshot.wooProducts, err = s.store.ListAllProducts(ctx)
		return err
	})

	if err := group.Wait(); err != nil {
		return snapshot, fmt.Errorf("fetch phase: %w", err)
	}
	return snapshot, nil
}

// applyPlan runs the three lanes concurrently. The planner guarantees the
// lanes touch disjoint SKU sets, so no ordering between them is needed.
func (s *CatalogSyncer) applyPlan(ctx context.Context, plan model.Plan, snapshot fetchSnapshot, report *model.SyncReport) {
	var created, updated, deleted, failed atomic.Int64

	var group errgroup.Group

	group.Go(func() error {
		laneReport := batch.Process(ctx, plan.ToCreate, s.syncCfg.BatchConcurrency, func(ctx context.Context, item model.PlannedCreate) error {
			redirected, err := s.createOne(ctx, item)
			if err != nil {
				return err
			}
			if redirected {
				updated.Add(1)
			} else {
				created.Add(1)
			}
			return nil
		})
		recordLaneFailures(s.logger, "create", laneReport, &failed)
		return nil
	})

	group.Go(func() error {
		laneReport := batch.Process(ctx, plan.ToUpdate, s.syncCfg.BatchConcurrency, func(ctx context.Context, item model.PlannedUpdate) error {
			if err := s.updateOne(ctx, item); err != nil {
				return err
			}
			updated.Add(1)
			return nil
		})
		recordLaneFailures(s.logger, "update", laneReport, &failed)
		return nil
	})

	group.Go(func() error {
		if snapshot.wooProducts.Partial() {
			// A partial storefront snapshot cannot distinguish "record
			// removed from the ERP" from "record on a lost page", so
			// deletes are withheld for this pass.
			report.DeletesWithheld = true
			if len(plan.ToDelete) > 0 {
				s.logger.LogWarning(fmt.Sprintf(
					"withholding %d deletes: storefront snapshot was partial", len(plan.ToDelete)))
			}
			return nil
		}
		laneReport := batch.Process(ctx, plan.ToDelete, s.syncCfg.BatchConcurrency, func(ctx context.Context, item model.PlannedDelete) error {
			if err := s.deleteOne(ctx, item); err != nil {
				return err
			}
			deleted.Add(1)
			return nil
		})
		recordLaneFailures(s.logger, "delete", laneReport, &failed)
		return nil
	})

	_ = group.Wait()

	report.Created = int(created.Load())
	report.Updated = int(updated.Load())
	report.Deleted = int(deleted.Load())
	report.Failed = int(failed.Load())
}

// createOne publishes one new record. When the storefront reports the SKU
// already exists (race with an earlier pass), the operation is redirected
// to an update of the existing record; redirected is true in that case.
func (s *CatalogSyncer) createOne(ctx context.Context, item model.PlannedCreate) (redirected bool, err error) {
	payload := woocommerce.BuildCreatePayload(item.Product, item.Stock, item.Price)

	// A conflict is deterministic, so it settles the retry loop immediately
	// instead of being retried like a transient failure.
	var conflict *woocommerce.ConflictError
	err = retry.DoVoid(ctx, s.syncCfg.RetryAttempts, s.syncCfg.RetryBaseDelay, func(ctx context.Context) error {
		_, createErr := s.store.CreateProduct(ctx, payload)
		if errors.As(createErr, &conflict) {
			return nil
		}
		return createErr
	})
	if err != nil {
		return false, fmt.Errorf("create sku %s: %w", item.SKU, err)
	}
	if conflict == nil {
		return false, nil
	}

	existing, lookupErr := s.store.GetProductBySku(ctx, item.SKU)
	if lookupErr != nil {
		return false, fmt.Errorf("create sku %s conflicted and lookup failed: %w", item.SKU, lookupErr)
	}
	if existing == nil {
		return false, fmt.Errorf("create sku %s conflicted but no existing record was found", item.SKU)
	}

	s.logger.LogWarning(fmt.Sprintf("sku %s already exists (id %d), redirecting create to update", item.SKU, existing.ID))
	update := model.PlannedUpdate{
		SKU:     item.SKU,
		WooID:   existing.ID,
		Product: item.Product,
		Stock:   item.Stock,
		Price:   item.Price,
	}
	if err := s.updateOne(ctx, update); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CatalogSyncer) updateOne(ctx context.Context, item model.PlannedUpdate) error {
	payload := woocommerce.BuildUpdatePayload(item.Product, item.Stock, item.Price)
	err := retry.DoVoid(ctx, s.syncCfg.RetryAttempts, s.syncCfg.RetryBaseDelay, func(ctx context.Context) error {
		_, updateErr := s.store.UpdateProduct(ctx, item.WooID, payload)
		return updateErr
	})
	if err != nil {
		return fmt.Errorf("update sku %s (id %d): %w", item.SKU, item.WooID, err)
	}
	return nil
}

func (s *CatalogSyncer) deleteOne(ctx context.Context, item model.PlannedDelete) error {
	err := retry.DoVoid(ctx, s.syncCfg.RetryAttempts, s.syncCfg.RetryBaseDelay, func(ctx context.Context) error {
		return s.store.RetireProduct(ctx, item.WooID)
	})
	if err != nil {
		return fmt.Errorf("retire sku %s (id %d): %w", item.SKU, item.WooID, err)
	}
	return nil
}

func recordLaneFailures[T any](logger logging.LoggerService, lane string, laneReport batch.Report[T], failed *atomic.Int64) {
	if laneReport.Failed == 0 {
		return
	}
	failed.Add(int64(laneReport.Failed))
	for _, failure := range laneReport.Failures {
		logger.LogError(fmt.Sprintf("%s lane item failed", lane), failure.Err)
	}
}

// verify re-fetches both sides and reports the symmetric SKU difference.
// Observability only; nothing is remediated inside the same pass.
func (s *CatalogSyncer) verify(ctx context.Context, snapshot fetchSnapshot, report *model.SyncReport) {
	group, groupCtx := errgroup.WithContext(ctx)

	var erpResult pagination.Result[model.Product]
	var wooResult pagination.Result[model.WooProduct]
	group.Go(func() error {
		var err error
		erpResult, err = s.erp.FetchProducts(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		wooResult, err = s.store.ListAllProducts(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		s.logger.LogWarning(fmt.Sprintf("consistency check skipped: %v", err))
		return
	}

	// Only priced ERP products are expected on the storefront; the pass
	// itself skips the rest.
	priced := make(map[int64]bool, len(snapshot.prices.Records))
	for _, p := range snapshot.prices.Records {
		priced[p.Code] = true
	}

	erpSKUs := make(map[string]bool, len(erpResult.Records))
	for _, p := range erpResult.Records {
		if !priced[p.Code] {
			continue
		}
		if key := sku.Normalize(p.SKU()); key != "" {
			erpSKUs[key] = true
		}
	}
	wooSKUs := make(map[string]bool, len(wooResult.Records))
	for _, p := range wooResult.Records {
		if key := sku.Normalize(p.SKU); key != "" {
			wooSKUs[key] = true
		}
	}

	for key := range erpSKUs {
		if !wooSKUs[key] {
			report.MissingInStorefront = append(report.MissingInStorefront, key)
		}
	}
	for key := range wooSKUs {
		if !erpSKUs[key] {
			report.ExtraInStorefront = append(report.ExtraInStorefront, key)
		}
	}
	sort.Strings(report.MissingInStorefront)
	sort.Strings(report.ExtraInStorefront)

	if len(report.MissingInStorefront) > 0 || len(report.ExtraInStorefront) > 0 {
		s.logger.LogWarning(fmt.Sprintf(
			"consistency check: %d sku missing in storefront, %d extra in storefront",
			len(report.MissingInStorefront), len(report.ExtraInStorefront),
		))
	}
}

func (s *CatalogSyncer) finishRun(report model.SyncReport, runErr error) {
	if err := s.runs.FinishRun(context.Background(), report, runErr); err != nil {
		s.logger.LogWarning(fmt.Sprintf("could not record sync run result: %v", err))
	}
}
