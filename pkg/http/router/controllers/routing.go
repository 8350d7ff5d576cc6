package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/safewalk-labs/safewalk/pkg/geo"
	helper "github.com/safewalk-labs/safewalk/pkg/http/router/routerhelper"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/route", api.route)
}

func (api *routingAPI) route(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request routeRequest
		err     error
	)

	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	if err := validateCoordinate(request.Origin, "origin"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateCoordinate(request.Destination, "destination"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	path, pathPolyline, found, err := api.routingService.SafestPath(r.Context(),
		request.Origin[0], request.Origin[1],
		request.Destination[0], request.Destination[1], request.Alpha)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if !found {
		if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEmptyRouteResponse()}, headers); err != nil {
			api.ServerErrorResponse(w, r, err)
		}
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(path, pathPolyline)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func validateCoordinate(coord []float64, field string) error {
	lat, lon := coord[0], coord[1]
	if lat < geo.MinLatitude || lat > geo.MaxLatitude {
		return fmt.Errorf("%s latitude must be in [%v, %v]", field, geo.MinLatitude, geo.MaxLatitude)
	}
	if lon < geo.MinLongitude || lon > geo.MaxLongitude {
		return fmt.Errorf("%s longitude must be in [%v, %v]", field, geo.MinLongitude, geo.MaxLongitude)
	}
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			translatedErr := fmt.Errorf(e.Translate(trans))
			errs = append(errs, translatedErr)
		}
	} else {
		errs = append(errs, err)
	}
	return errs
}
