package memory

// Store bundles the in-memory repositories behind one value
type Store struct {
	*PartRepository
	*DemandRepository
	*StockRepository
	*CalendarRepository
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		PartRepository:     NewPartRepository(0),
		DemandRepository:   NewDemandRepository(),
		StockRepository:    NewStockRepository(),
		CalendarRepository: NewCalendarRepository(),
	}
}
