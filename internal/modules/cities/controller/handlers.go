package controller

import (
	"log/slog"
	"net/http"
	"strconv"

	"meteodb-server/internal/apperr"
	"meteodb-server/internal/modules/cities/types"
	"meteodb-server/internal/utils"
	"meteodb-server/internal/validate"
)

var citySchema = validate.Schema{
	Entity: "city",
	Fields: []validate.Field{
		{Name: "idTara", Kind: validate.Real},
		{Name: "nume", Kind: validate.String},
		{Name: "lat", Kind: validate.Real},
		{Name: "lon", Kind: validate.Real},
	},
}

func (c *cityControllerImpl) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := validate.DecodeObject(r.Body)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "request body is not a JSON object")
		return
	}
	if err := citySchema.Create(payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	countryID, _ := validate.Number(payload["idTara"])
	name := validate.Text(payload["nume"])
	lat, _ := validate.Number(payload["lat"])
	lon, _ := validate.Number(payload["lon"])

	id, err := c.repository.Create(int64(countryID), name, lat, lon)
	if err != nil {
		slog.Warn("create city failed", "name", name, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (c *cityControllerImpl) handleList(w http.ResponseWriter, r *http.Request) {
	cities, err := c.repository.List()
	if err != nil {
		slog.Error("list cities failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, cities)
}

// handleListByCountry is the cities-by-country view. An unknown country is not
// an error, it just matches nothing.
func (c *cityControllerImpl) handleListByCountry(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	countryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("country id is not an integer", "id", raw)
		utils.WriteError(w, http.StatusBadRequest, "country id must be an integer")
		return
	}
	cities, err := c.repository.ListByCountry(countryID)
	if err != nil {
		slog.Error("list cities by country failed", "country_id", countryID, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, cities)
}

func (c *cityControllerImpl) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "city")
	if !ok {
		return
	}
	payload, err := validate.DecodeObject(r.Body)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "request body is not a JSON object")
		return
	}
	if err := citySchema.Put(payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	bodyID, _ := validate.Integer(payload["id"])
	countryID, _ := validate.Number(payload["idTara"])
	lat, _ := validate.Number(payload["lat"])
	lon, _ := validate.Number(payload["lon"])
	city := types.City{
		ID:        bodyID,
		CountryID: int64(countryID),
		Name:      validate.Text(payload["nume"]),
		Lat:       lat,
		Lon:       lon,
	}

	if err := c.repository.Update(id, city); err != nil {
		slog.Warn("update city failed", "id", id, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{})
}

func (c *cityControllerImpl) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "city")
	if !ok {
		return
	}
	if err := c.repository.Delete(id); err != nil {
		slog.Warn("delete city failed", "id", id, "error", err)
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
