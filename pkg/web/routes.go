package web

import "github.com/gofiber/fiber/v3"

// Register mounts every API route on router.
func (h *APIHandlers) Register(router fiber.Router) {
	router.Get("/health", h.HealthCheck)

	r := router.Group("/registry")
	r.Get("/nodes", h.GetNodeTypes)
	r.Get("/fields", h.GetFieldTypes)

	w := router.Group("/workflows")
	w.Get("/", h.GetWorkflows)
	w.Post("/", h.CreateWorkflow)
	w.Post("/validate", h.ValidateWorkflow)
	w.Get("/:id", h.GetWorkflow)
	w.Put("/:id", h.UpdateWorkflow)
	w.Delete("/:id", h.DeleteWorkflow)

	t := router.Group("/templates")
	t.Get("/", h.GetTemplates)
	t.Get("/:id", h.GetTemplate)
	t.Get("/:id/preview", h.PreviewTemplate)
	t.Post("/:id/use", h.UseTemplate)

	f := router.Group("/forms")
	f.Get("/", h.GetForms)
	f.Post("/", h.CreateForm)
	f.Post("/fields/validate", h.ValidateField)
	f.Get("/:id", h.GetForm)
	f.Put("/:id", h.UpdateForm)
	f.Delete("/:id", h.DeleteForm)
	f.Get("/:id/wizard", h.GetFormWizard)
	f.Post("/:id/submissions/validate", h.ValidateSubmission)

	d := router.Group("/drafts")
	d.Get("/:key", h.GetDraft)
	d.Put("/:key", h.PutDraft)
	d.Delete("/:key", h.DeleteDraft)

	c := router.Group("/catalog")
	c.Get("/products", h.GetProducts)
	c.Post("/products", h.CreateProduct)
	c.Get("/products/:id", h.GetProduct)
	c.Put("/products/:id", h.UpdateProduct)
	c.Delete("/products/:id", h.DeleteProduct)
	c.Get("/taxonomies", h.GetTaxonomies)
	c.Post("/taxonomies", h.CreateTaxonomy)
	c.Delete("/taxonomies/:id", h.DeleteTaxonomy)
	c.Post("/translate", h.Translate)
	c.Post("/images", h.GenerateImage)

	n := router.Group("/notifications")
	n.Get("/", h.GetNotifications)
	n.Post("/read-all", h.MarkAllNotificationsRead)
	n.Post("/:id/read", h.MarkNotificationRead)
}
