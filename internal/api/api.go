package api

import (
	"errors"
	"net/http"

	models "github.com/albarakah/voyages/internal"
	"github.com/albarakah/voyages/internal/ports"
	"github.com/albarakah/voyages/internal/utils"
	"github.com/albarakah/voyages/internal/validator"
)

// genericRetryMsg is the single undifferentiated failure surfaced to the
// end user for anything that aborts the booking flow server-side.
const genericRetryMsg = "booking failed, please try again"

func BookingHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createBooking(service, w, r)
		case http.MethodGet:
			getBooking(service, w, r)
		}
	}
}

func createBooking(service ports.BookingService, w http.ResponseWriter, r *http.Request) {
	var bookingRequest models.BookingRequest
	if err := utils.JsonDecodeBody(r, &bookingRequest); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderResponse(w, ae.StatusCode, ae)
		return
	}

	v := validator.NewCustomValidator()
	if err := v.Validate(bookingRequest); err != nil {
		ae := utils.NewBadRequest(err.Error())
		utils.RenderResponse(w, ae.StatusCode, ae)
		return
	}

	booking, err := service.CreateBooking(r.Context(), &bookingRequest)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(w, http.StatusCreated, booking)
}

func getBooking(service ports.BookingService, w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("ref")
	if reference == "" {
		ae := utils.NewBadRequest("missing ref parameter")
		utils.RenderResponse(w, ae.StatusCode, ae)
		return
	}

	booking, err := service.GetBookingByReference(r.Context(), reference)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(w, http.StatusOK, booking)
}

func TripsHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trips, err := service.ListTrips(r.Context())
		if err != nil {
			ae := utils.NewInternalServerError("error fetching trips")
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusOK, map[string]interface{}{"trips": trips})
	}
}

func ContactHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg models.ContactMessage
		if err := utils.JsonDecodeBody(r, &msg); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(msg); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}

		if err := service.SubmitContactMessage(r.Context(), &msg); err != nil {
			ae := utils.NewInternalServerError("error saving message")
			utils.RenderResponse(w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(w, http.StatusCreated, msg)
	}
}

func getApiError(err error) utils.ApiError {
	switch {
	case errors.Is(err, models.ErrTripNotFound):
		return utils.NewNotFound(models.ErrTripNotFound.Error())
	case errors.Is(err, models.ErrBookingNotFound):
		return utils.NewNotFound(models.ErrBookingNotFound.Error())
	case errors.Is(err, models.ErrInvalidUUID):
		return utils.NewBadRequest(models.ErrInvalidUUID.Error())
	default:
		return utils.NewInternalServerError(genericRetryMsg)
	}
}
