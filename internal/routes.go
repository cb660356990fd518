package internal

import (
	"cellar/internal/controllers"
	"cellar/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/wines", http.HandlerFunc(apiController.ListWines))
	routers.Get("/wines/{id}", http.HandlerFunc(apiController.GetWine))
	routers.Post("/wines/{id}/consume", http.HandlerFunc(apiController.Consume))
	routers.Get("/facets", http.HandlerFunc(apiController.GetFacets))
	routers.Get("/journal", http.HandlerFunc(apiController.GetJournal))
	routers.Get("/logs/{key}", http.HandlerFunc(apiController.GetLog))
	routers.Put("/logs/{key}", http.HandlerFunc(apiController.EditLog))
	routers.Delete("/logs/{key}", http.HandlerFunc(apiController.DeleteLog))
	routers.Post("/notes", http.HandlerFunc(apiController.AddNote))
	routers.Delete("/notes/{id}", http.HandlerFunc(apiController.DeleteNote))
	routers.Get("/export", http.HandlerFunc(apiController.Export))
	routers.Post("/reset", http.HandlerFunc(apiController.Reset))
	routers.Get("/verify", http.HandlerFunc(apiController.Verify))
	return routers
}
