package builds

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Route("/{id}/parts", func(r chi.Router) {
		r.Get("/", h.ListParts)
		r.Post("/", h.AddPart)
		r.Get("/{itemID}", h.GetPart)
		r.Put("/{itemID}", h.UpdatePart)
		r.Delete("/{itemID}", h.DeletePart)
	})

	r.Route("/{id}/tools", func(r chi.Router) {
		r.Get("/", h.ListTools)
		r.Post("/", h.AddTool)
		r.Get("/{toolID}", h.GetTool)
		r.Put("/{toolID}", h.UpdateTool)
		r.Delete("/{toolID}", h.DeleteTool)
	})
}
