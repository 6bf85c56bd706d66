package services

import (
	"github.com/storecast/storecast/internal/dataset"
	"github.com/storecast/storecast/internal/logging"
	"github.com/storecast/storecast/internal/models"
)

// CatalogService answers store and department listing queries against
// the currently loaded dataset.
type CatalogService struct {
	logger *logging.Logger
	store  *dataset.Store
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(logger *logging.Logger, store *dataset.Store) *CatalogService {
	return &CatalogService{
		logger: logger,
		store:  store,
	}
}

// ListStores returns the sorted store catalog
func (s *CatalogService) ListStores() (*models.StoreListResponse, error) {
	ds := s.store.Current()
	if ds == nil {
		return nil, NewServiceError(CodeDataUnavailable, "dataset not loaded")
	}

	infos := ds.Stores()
	stores := make([]models.StoreResponse, len(infos))
	for i, info := range infos {
		stores[i] = models.StoreResponse{
			Store: info.Store,
			Type:  info.Type,
			Size:  info.Size,
		}
	}

	return &models.StoreListResponse{
		Stores: stores,
		Count:  len(stores),
	}, nil
}

// ListDepartments returns the sorted departments seen for one store
func (s *CatalogService) ListDepartments(store int) (*models.DepartmentListResponse, error) {
	ds := s.store.Current()
	if ds == nil {
		return nil, NewServiceError(CodeDataUnavailable, "dataset not loaded")
	}

	depts, ok := ds.Departments(store)
	if !ok {
		return nil, NewServiceErrorWithDetails(CodeNoDataForKey,
			"no data for store",
			map[string]interface{}{"store": store})
	}

	return &models.DepartmentListResponse{
		Store:       store,
		Departments: depts,
		Count:       len(depts),
	}, nil
}
