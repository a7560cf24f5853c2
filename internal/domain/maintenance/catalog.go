package maintenance

import "github.com/google/uuid"

// CatalogEntry is one entry of the static default checklist.
type CatalogEntry struct {
	ID          string
	Title       string
	Description string
	Category    Category
}

// DefaultCatalog is the built-in maintenance checklist seeded for every new
// user. Preset assignments narrow this set per user.
var DefaultCatalog = []CatalogEntry{
	// Daily
	{ID: "daily-1", Title: "Platform Check", Description: "Check platform is free of objects/debris", Category: CategoryDaily},
	{ID: "daily-2", Title: "Waste Ink Bottle Level", Description: "Check waste ink bottle level", Category: CategoryDaily},
	{ID: "daily-3", Title: "Ink Supply Check", Description: "Check ink supply in tanks", Category: CategoryDaily},
	{ID: "daily-4", Title: "Capping Station & Wipers", Description: "Check capping station and wipers", Category: CategoryDaily},
	{ID: "daily-5", Title: "Printhead Condition", Description: "Check printhead condition (start and end of day)", Category: CategoryDaily},
	{ID: "daily-6", Title: "Environment Check", Description: "Check for dust, proper temperature/humidity", Category: CategoryDaily},
	// Weekly
	{ID: "weekly-1", Title: "Deep Printhead Cleaning", Description: "Perform deep printhead cleaning", Category: CategoryWeekly},
	{ID: "weekly-2", Title: "Slider Rail & Gears", Description: "Maintenance of slider rail and gears", Category: CategoryWeekly},
	// Monthly
	{ID: "monthly-1", Title: "Ink Path Check", Description: "Check ink path (tubes and dampers)", Category: CategoryMonthly},
	{ID: "monthly-2", Title: "Encoder Strip Cleaning", Description: "Clean encoder strip", Category: CategoryMonthly},
	// Quarterly
	{ID: "quarterly-1", Title: "Clean Ink Cartridges/Tanks", Description: "Clean ink cartridges and tanks", Category: CategoryQuarterly},
	{ID: "quarterly-2", Title: "Circuit Inspection", Description: "Inspect electrical circuits", Category: CategoryQuarterly},
	// Yearly
	{ID: "yearly-1", Title: "Electric Control Box", Description: "Inspect and clean electric control box", Category: CategoryYearly},
	{ID: "yearly-2", Title: "Computer Cleaning", Description: "Clean computer system", Category: CategoryYearly},
	// Non-printing periods
	{ID: "non-printing-1", Title: "Head Test & Auto Clean", Description: "Perform head test and auto clean every week during non-printing periods", Category: CategoryNonPrinting},
	{ID: "non-printing-2", Title: "Head Clean & Nozzle Check", Description: "Head clean and nozzle check every 3-5 days during idle periods", Category: CategoryNonPrinting},
	{ID: "non-printing-3", Title: "Cleaning Fluid in Capping Core", Description: "Pour cleaning fluid into capping core monthly if idle", Category: CategoryNonPrinting},
}

// Materialize turns a catalog entry into a Task owned by userID.
func (e CatalogEntry) Materialize(userID uuid.UUID) Task {
	return Task{
		ID:          e.ID,
		UserID:      userID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
	}
}
