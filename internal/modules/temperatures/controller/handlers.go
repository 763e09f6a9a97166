package controller

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"meteodb-server/internal/apperr"
	"meteodb-server/internal/utils"
	"meteodb-server/internal/validate"
)

var temperatureSchema = validate.Schema{
	Entity: "temperature",
	Fields: []validate.Field{
		{Name: "idOras", Kind: validate.Real},
		{Name: "valoare", Kind: validate.Real},
	},
}

func (c *temperatureControllerImpl) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := validate.DecodeObject(r.Body)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "request body is not a JSON object")
		return
	}
	if err := temperatureSchema.Create(payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cityID, _ := validate.Number(payload["idOras"])
	value, _ := validate.Number(payload["valoare"])

	id, err := c.repository.Create(int64(cityID), value)
	if err != nil {
		slog.Warn("create temperature failed", "city_id", int64(cityID), "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// handleFiltered is the filtered listing: optional lat/lon matched within a
// 0.001 epsilon against the reading's city, optional inclusive date bounds.
func (c *temperatureControllerImpl) handleFiltered(w http.ResponseWriter, r *http.Request) {
	lat, ok := coordParam(w, r, "lat")
	if !ok {
		return
	}
	lon, ok := coordParam(w, r, "lon")
	if !ok {
		return
	}
	from, until, ok := dateParams(w, r)
	if !ok {
		return
	}

	temps, err := c.repository.Filtered(lat, lon, from, until)
	if err != nil {
		slog.Error("filtered temperatures query failed", "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, temps)
}

func (c *temperatureControllerImpl) handleByCity(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	cityID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("city id is not an integer", "id", raw)
		utils.WriteError(w, http.StatusBadRequest, "city id must be an integer")
		return
	}
	from, until, ok := dateParams(w, r)
	if !ok {
		return
	}

	temps, err := c.repository.ByCity(cityID, from, until)
	if err != nil {
		slog.Error("temperatures by city query failed", "city_id", cityID, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, temps)
}

func (c *temperatureControllerImpl) handleByCountry(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	countryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("country id is not an integer", "id", raw)
		utils.WriteError(w, http.StatusBadRequest, "country id must be an integer")
		return
	}
	from, until, ok := dateParams(w, r)
	if !ok {
		return
	}

	temps, err := c.repository.ByCountry(countryID, from, until)
	if err != nil {
		slog.Error("temperatures by country query failed", "country_id", countryID, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, temps)
}

func (c *temperatureControllerImpl) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	payload, err := validate.DecodeObject(r.Body)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "request body is not a JSON object")
		return
	}
	if err := temperatureSchema.Put(payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	bodyID, _ := validate.Integer(payload["id"])
	cityID, _ := validate.Number(payload["idOras"])
	value, _ := validate.Number(payload["valoare"])

	if err := c.repository.Update(id, bodyID, int64(cityID), value); err != nil {
		slog.Warn("update temperature failed", "id", id, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{})
}

func (c *temperatureControllerImpl) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.repository.Delete(id); err != nil {
		slog.Warn("delete temperature failed", "id", id, "error", err)
		utils.WriteError(w, apperr.StatusOf(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{})
}

// pathID parses the {id} segment. A non-integer id cannot address any row, so
// it is reported as 404 rather than 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("path id is not an integer", "entity", "temperature", "id", raw)
		utils.WriteError(w, http.StatusNotFound, "temperature id must be an integer")
		return 0, false
	}
	return id, true
}

// coordParam parses an optional float query parameter, nil when absent.
func coordParam(w http.ResponseWriter, r *http.Request, name string) (*float64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Warn("coordinate filter is not a number", "param", name, "value", s)
		utils.WriteError(w, http.StatusBadRequest, name+" must be a number")
		return nil, false
	}
	return &f, true
}

// dateParams parses the optional from/until filters. Both must be YYYY-MM-DD
// dates; a parse failure rejects the request before any query runs.
func dateParams(w http.ResponseWriter, r *http.Request) (from, until *string, ok bool) {
	q := r.URL.Query()
	for _, name := range []string{"from", "until"} {
		s := q.Get(name)
		if s == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			slog.Warn("date filter is not a YYYY-MM-DD date", "param", name, "value", s)
			utils.WriteError(w, http.StatusBadRequest, name+" must be a YYYY-MM-DD date")
			return nil, nil, false
		}
		v := s
		if name == "from" {
			from = &v
		} else {
			until = &v
		}
	}
	return from, until, true
}
