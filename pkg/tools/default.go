package tools

import "github.com/jobdeck/jobdeck/pkg/store"

// DefaultCatalog builds the standard job-board tool set bound to a facade.
func DefaultCatalog(facade store.Facade) *Catalog {
	return NewCatalog([]Tool{
		&SearchJobOffersTool{Store: facade},
		&GetJobOfferDetailsTool{Store: facade},
		&GetMyApplicationsTool{Store: facade},
		&CreateApplicationTool{Store: facade},
		&GetMyFavoritesTool{Store: facade},
		&AddToFavoritesTool{Store: facade},
		&RemoveFromFavoritesTool{Store: facade},
		&GetMyProfileTool{Store: facade},
		&SendMessageTool{Store: facade},
		&GetDecisionProfileTool{Store: facade},
		&GetCandidateStatsTool{Store: facade},
	})
}
