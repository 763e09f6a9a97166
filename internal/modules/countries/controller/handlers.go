package controller

import (
	"log/slog"
	"net/http"
	"strconv"

	"meteodb-server/internal/apperr"
	"meteodb-server/internal/modules/countries/types"
	"meteodb-server/internal/utils"
	"meteodb-server/internal/validate"
)

var countrySchema = validate.Schema{
	Entity: "country",
	Fields: []validate.Field{
		{Name: "nume", Kind: validate.String},
		{Name: "lat", Kind: validate.Real},
		{Name: "lon", Kind: validate.Real},
	},
}

func (c *countryControllerImpl) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := validate.DecodeObject(r.Body)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "request body is not a JSON object")
		return
	}
	if err := countrySchema.Create(payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := validate.Text(payload["nume"])
	lat, _ := validate.Number(payload["lat"])
	lon, _ := validate.Number(payload["lon"])

	id, err := c.repository.Create(name, lat, lon)
	if err != nil {
		slog.Warn("create country failed", "name", name, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (c *countryControllerImpl) handleList(w http.ResponseWriter, r *http.Request) {
	countries, err := c.repository.List()
	if err != nil {
		slog.Error("list countries failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, countries)
}

func (c *countryControllerImpl) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "country")
	if !ok {
		return
	}
	payload, err := validate.DecodeObject(r.Body)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "request body is not a JSON object")
		return
	}
	if err := countrySchema.Put(payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	bodyID, _ := validate.Integer(payload["id"])
	lat, _ := validate.Number(payload["lat"])
	lon, _ := validate.Number(payload["lon"])
	country := types.Country{
		ID:   bodyID,
		Name: validate.Text(payload["nume"]),
		Lat:  lat,
		Lon:  lon,
	}

	if err := c.repository.Update(id, country); err != nil {
		slog.Warn("update country failed", "id", id, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{})
}

func (c *countryControllerImpl) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "country")
	if !ok {
		return
	}
	if err := c.repository.Delete(id); err != nil {
		slog.Warn("delete country failed", "id", id, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{})
}

// pathID parses the {id} segment. A non-integer id cannot address any row, so
// it is reported as 404 rather than 400.
func pathID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("path id is not an integer", "entity", entity, "id", raw)
		utils.WriteError(w, http.StatusNotFound, entity+" id must be an integer")
		return 0, false
	}
	return id, true
}
