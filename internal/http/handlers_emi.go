package http

import (
	"net/http"
	"strconv"

	"fintrack/internal/emi"
)

func parseFloatParam(r *http.Request, name string) (float64, bool) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	return v, err == nil
}

// handleEMISchedule computes the equal monthly installment for a loan.
// The calculator is stateless; nothing is persisted.
func (s *Server) handleEMISchedule(w http.ResponseWriter, r *http.Request) {
	principal, ok := parseFloatParam(r, "principal")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid principal: must be a number")
		return
	}
	rate, ok := parseFloatParam(r, "rate")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid rate: must be a number")
		return
	}
	years, err := strconv.Atoi(r.URL.Query().Get("years"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid years: must be an integer")
		return
	}

	schedule, err := emi.Compute(principal, rate, years)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{
		"emi":            schedule.EMI,
		"total_interest": schedule.TotalInterest,
		"total_payment":  schedule.TotalPayment,
	})
}

// handleEMIAngles converts a principal/interest split into pie chart angles.
func (s *Server) handleEMIAngles(w http.ResponseWriter, r *http.Request) {
	principal, ok := parseFloatParam(r, "principal")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid principal: must be a number")
		return
	}
	interest, ok := parseFloatParam(r, "interest")
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid interest: must be a number")
		return
	}

	angles, err := emi.SplitAngles(principal, interest)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{
		"principal_degrees": angles.PrincipalDegrees,
		"interest_degrees":  angles.InterestDegrees,
	})
}
