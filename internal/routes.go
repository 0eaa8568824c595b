package internal

import (
	"net/http"

	"cpd/internal/controllers"
	"cpd/internal/providers"
	"cpd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/personas", http.HandlerFunc(apiController.ListPersonas))
	routers.Post("/personas", http.HandlerFunc(apiController.CreatePersona))
	routers.Put("/persona", http.HandlerFunc(apiController.UpdatePersona))
	routers.Delete("/persona", http.HandlerFunc(apiController.DeletePersona))

	routers.Get("/blogs", http.HandlerFunc(apiController.ListBlogs))
	routers.Post("/blogs", http.HandlerFunc(apiController.CreateBlog))
	routers.Put("/blog", http.HandlerFunc(apiController.UpdateBlog))
	routers.Delete("/blog", http.HandlerFunc(apiController.DeleteBlog))

	routers.Get("/calendar", http.HandlerFunc(apiController.GetCalendar))
	routers.Get("/analytics", http.HandlerFunc(apiController.GetAnalytics))
	routers.Get("/exports", http.HandlerFunc(apiController.GetExports))
	routers.Get("/prompt", http.HandlerFunc(apiController.GetPrompt))

	return routers
}
