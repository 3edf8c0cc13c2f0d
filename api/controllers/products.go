package controllers

import (
	"net/http"

	"github.com/arbrands/storefront-backend/api/responses"
	"github.com/arbrands/storefront-backend/api/validators"
	productsvc "github.com/arbrands/storefront-backend/internal/products"
	pkgerrors "github.com/arbrands/storefront-backend/pkg/errors"
	"github.com/arbrands/storefront-backend/pkg/logger"
)

// ProductList serves the filtered browse endpoint. Filters arrive as query
// parameters and compose into one predicate; unknown parameters are ignored.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		filters, err := parseListFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductGet returns a single product with its category fields.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductCreate creates a product. Admin only.
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var body productsvc.CreateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ProductUpdate patches a product; absent fields keep their previous value.
// Admin only.
func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body productsvc.UpdateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductDelete removes a product. Admin only.
func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseListFilters(r *http.Request) (productsvc.ListFilters, error) {
	var filters productsvc.ListFilters

	categoryID, err := validators.ParseQueryUUID(r, "category_id")
	if err != nil {
		return filters, err
	}
	minPrice, err := validators.ParseQueryDecimal(r, "min_price")
	if err != nil {
		return filters, err
	}
	maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
	if err != nil {
		return filters, err
	}
	featured, err := validators.ParseQueryBool(r, "featured")
	if err != nil {
		return filters, err
	}
	available, err := validators.ParseQueryBool(r, "available")
	if err != nil {
		return filters, err
	}

	filters.CategoryID = categoryID
	filters.Search = validators.SanitizeString(r.URL.Query().Get("search"), 200)
	filters.MinPrice = minPrice
	filters.MaxPrice = maxPrice
	filters.FeaturedOnly = featured
	filters.AvailableOnly = available
	return filters, nil
}
