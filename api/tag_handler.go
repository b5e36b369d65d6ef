package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vbforge/projects-tracker/database"
	"github.com/vbforge/projects-tracker/errs"
	"github.com/vbforge/projects-tracker/models"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

type tagRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// getAllTags lists the owner's tags, ordered by name or by usage when
// ?orderBy=usage is given.
func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		var tags []models.Tag
		if r.URL.Query().Get("orderBy") == "usage" {
			tags, err = h.tagRepo.FindAllByOwnerOrderByUsage(ownerID)
		} else {
			tags, err = h.tagRepo.FindAllByOwnerOrderByName(ownerID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"tags":  tags,
			"total": len(tags),
		})
	}
}

// createTag adds a new tag. Name collisions are conflicts only within the
// same owner's tag set.
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("tag", err))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		exists, err := h.tagRepo.ExistsByNameAndOwner(req.Name, ownerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewAlreadyExists("tag"))
			return
		}

		tag := models.Tag{
			Name:        req.Name,
			Color:       req.Color,
			Description: req.Description,
			OwnerID:     ownerID,
		}
		if err := h.tagRepo.Add(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}

		h.logger.Info().Str("tagID", tag.ID.String()).Str("name", tag.Name).Msg("Tag created")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, &tag)
	}
}

// updateTag renames or restyles an existing tag, keeping the per-owner name
// uniqueness.
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		tag, err := h.tagRepo.FindByIDAndOwner(tagID, ownerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("tag", err))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		if req.Name != tag.Name {
			exists, err := h.tagRepo.ExistsByNameAndOwner(req.Name, ownerID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
				return
			}
			if exists {
				h.responder.WriteError(w, errs.NewAlreadyExists("tag"))
				return
			}
		}

		tag.Name = req.Name
		if req.Color != "" {
			tag.Color = req.Color
		}
		tag.Description = req.Description

		if err := h.tagRepo.Update(tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "tag", err))
			return
		}

		h.responder.WriteJSON(w, tag)
	}
}

// deleteTag removes the tag; projects that carried it are untouched.
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		deleted, err := h.tagRepo.Delete(tagID, ownerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "tag", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		h.logger.Info().Str("tagID", tagID.String()).Msg("Tag deleted")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "tag deleted successfully",
		})
	}
}
