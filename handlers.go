package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jaan-distributors/storefront/pkg/auth"
	"github.com/jaan-distributors/storefront/pkg/cart"
	"github.com/jaan-distributors/storefront/pkg/catalog"
	"github.com/jaan-distributors/storefront/pkg/client"
	"github.com/jaan-distributors/storefront/pkg/model"
	"github.com/jaan-distributors/storefront/pkg/service"
	"github.com/jaan-distributors/storefront/validator"
)

// storefront is the HTTP surface over the cart sessions, the catalog, the
// auth service and the ERP client. Handlers emit the {success, data, error}
// envelope; the cart JSON is whatever the session holds, callers must not
// recompute totals from it.
type storefront struct {
	log      *logrus.Logger
	sessions *cart.Manager
	catalog  catalog.ProductRepository
	erp      *client.OdooClient
	checkout *service.CheckoutService
	auth     *auth.Service
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, model.APIResponse[interface{}]{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.APIResponse[interface{}]{Success: false, Error: msg})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(err, "invalid request body")
	}
	return nil
}

// session looks up the live cart session for the request's session cookie.
func (fe *storefront) session(r *http.Request) *cart.Session {
	return fe.sessions.Session(r.Context(), sessionID(r))
}

func (fe *storefront) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	if requestCounter != nil {
		requestCounter.Add(r.Context(), 1)
	}

	q := r.URL.Query()
	categoryID, _ := strconv.ParseInt(q.Get("category_id"), 10, 64)
	minPrice, _ := strconv.ParseFloat(q.Get("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(q.Get("max_price"), 64)
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	f := catalog.Filters{
		CategoryID:  categoryID,
		Search:      q.Get("search"),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		InStockOnly: q.Get("in_stock_only") == "true",
		SortBy:      q.Get("sort_by"),
		Page:        page,
		PerPage:     perPage,
	}
	products, err := fe.catalog.ListProducts(r.Context(), f)
	if err != nil {
		log.WithField("error", err).Error("could not list products")
		writeError(w, http.StatusInternalServerError, "could not retrieve products")
		return
	}
	writeData(w, products)
}

func (fe *storefront) featuredProductsHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	products, err := fe.catalog.FeaturedProducts(r.Context())
	if err != nil {
		log.WithField("error", err).Error("could not list featured products")
		writeError(w, http.StatusInternalServerError, "could not retrieve products")
		return
	}
	writeData(w, products)
}

func (fe *storefront) getProductHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	slug := mux.Vars(r)["slug"]
	p, err := fe.catalog.GetProductBySlug(r.Context(), slug)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		log.WithField("error", err).Error("could not get product")
		writeError(w, http.StatusInternalServerError, "could not retrieve product")
		return
	}
	writeData(w, p)
}

func (fe *storefront) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	categories, err := fe.catalog.ListCategories(r.Context())
	if err != nil {
		log.WithField("error", err).Error("could not list categories")
		writeError(w, http.StatusInternalServerError, "could not retrieve categories")
		return
	}
	writeData(w, categories)
}

func (fe *storefront) getCategoryHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	c, err := fe.catalog.GetCategoryBySlug(r.Context(), mux.Vars(r)["slug"])
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		log.WithField("error", err).Error("could not get category")
		writeError(w, http.StatusInternalServerError, "could not retrieve category")
		return
	}
	writeData(w, c)
}

func (fe *storefront) viewCartHandler(w http.ResponseWriter, r *http.Request) {
	writeData(w, fe.session(r).Cart())
}

func (fe *storefront) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)

	var payload validator.AddToCartPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validator.ValidationErrorResponse(err).Error())
		return
	}
	log.WithField("product", payload.ProductID).WithField("quantity", payload.Quantity).Debug("adding to cart")

	p, err := fe.catalog.GetProductByID(r.Context(), payload.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		log.WithField("error", err).Error("could not get product")
		writeError(w, http.StatusInternalServerError, "could not retrieve product")
		return
	}

	sess := fe.session(r)
	if err := sess.AddToCart(r.Context(), p, payload.Quantity); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, sess.Cart())
}

func (fe *storefront) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var payload validator.UpdateQuantityPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := fe.session(r)
	sess.UpdateQuantity(r.Context(), productID, payload.Quantity)
	writeData(w, sess.Cart())
}

func (fe *storefront) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	sess := fe.session(r)
	sess.RemoveFromCart(r.Context(), productID)
	writeData(w, sess.Cart())
}

func (fe *storefront) emptyCartHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	log.Debug("emptying cart")

	sess := fe.session(r)
	sess.ClearCart(r.Context())
	writeData(w, sess.Cart())
}

func (fe *storefront) syncCartHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)

	sess := fe.session(r)
	if err := sess.Sync(r.Context(), fe.erp); err != nil {
		log.WithField("error", err).Warn("cart sync failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeData(w, sess.Cart())
}

func (fe *storefront) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	log.Debug("placing order")

	var payload struct {
		validator.PlaceOrderPayload
		ShippingAddress model.Address `json:"shipping_address"`
		BillingAddress  model.Address `json:"billing_address"`
		Notes           string        `json:"notes"`
	}
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Name == "" {
		// accept the address block as the payload source when the flat
		// fields are absent
		payload.PlaceOrderPayload = validator.PlaceOrderPayload{
			Name:          payload.ShippingAddress.Name,
			Street:        payload.ShippingAddress.Street,
			City:          payload.ShippingAddress.City,
			State:         payload.ShippingAddress.State,
			Zip:           payload.ShippingAddress.Zip,
			Country:       payload.ShippingAddress.Country,
			Phone:         payload.ShippingAddress.Phone,
			PaymentMethod: payload.PaymentMethod,
		}
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validator.ValidationErrorResponse(err).Error())
		return
	}

	order, err := fe.checkout.PlaceOrder(r.Context(), fe.session(r), service.CheckoutRequest{
		ShippingAddress: payload.ShippingAddress,
		BillingAddress:  payload.BillingAddress,
		PaymentMethod:   payload.PaymentMethod,
		Notes:           payload.Notes,
	})
	if errors.Is(err, service.ErrEmptyCart) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.WithField("error", err).Warn("checkout failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	log.WithField("order", order.Name).Info("order placed")
	writeData(w, order)
}

func (fe *storefront) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	orders, err := fe.erp.ListOrders(r.Context())
	if err != nil {
		log.WithField("error", err).Warn("could not list orders")
		writeError(w, http.StatusBadGateway, "could not retrieve orders")
		return
	}
	writeData(w, orders)
}

func (fe *storefront) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := fe.erp.GetOrder(r.Context(), id)
	if err != nil {
		log.WithField("error", err).Warn("could not get order")
		writeError(w, http.StatusBadGateway, "could not retrieve order")
		return
	}
	writeData(w, order)
}

func (fe *storefront) registerHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)

	var payload validator.RegisterPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validator.ValidationErrorResponse(err).Error())
		return
	}

	user, token, err := fe.auth.Register(r.Context(), payload.Name, payload.Email, payload.Password, payload.Phone)
	if errors.Is(err, auth.ErrUserExists) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		log.WithField("error", err).Error("registration failed")
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	fe.setAuthCookie(w, token)
	writeData(w, map[string]interface{}{"user": user, "token": token})
}

func (fe *storefront) loginHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)

	var payload validator.LoginPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validator.ValidationErrorResponse(err).Error())
		return
	}

	user, token, err := fe.auth.Login(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		log.WithField("error", err).Error("login failed")
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	fe.setAuthCookie(w, token)
	writeData(w, map[string]interface{}{"user": user, "token": token})
}

func (fe *storefront) logoutHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	log.Debug("logging out")
	http.SetCookie(w, &http.Cookie{Name: cookieToken, Path: "/", MaxAge: -1})
	writeData(w, nil)
}

func (fe *storefront) accountHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, fe.log)
	user, err := fe.auth.Account(r.Context(), getUserID(r))
	if err != nil {
		log.WithField("error", err).Warn("could not load account")
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	writeData(w, user)
}

func (fe *storefront) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]string{"status": "ok"})
}

func (fe *storefront) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieToken,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
	})
}

// routes wires the full JSON API.
func (fe *storefront) routes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/products", fe.listProductsHandler).Methods(http.MethodGet)
	api.HandleFunc("/products/featured", fe.featuredProductsHandler).Methods(http.MethodGet)
	api.HandleFunc("/products/{slug}", fe.getProductHandler).Methods(http.MethodGet)
	api.HandleFunc("/categories", fe.listCategoriesHandler).Methods(http.MethodGet)
	api.HandleFunc("/categories/{slug}", fe.getCategoryHandler).Methods(http.MethodGet)

	api.HandleFunc("/cart", fe.viewCartHandler).Methods(http.MethodGet)
	api.HandleFunc("/cart", fe.emptyCartHandler).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", fe.addToCartHandler).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{id}", fe.updateCartItemHandler).Methods(http.MethodPut)
	api.HandleFunc("/cart/items/{id}", fe.removeCartItemHandler).Methods(http.MethodDelete)
	api.HandleFunc("/cart/sync", fe.syncCartHandler).Methods(http.MethodPost)

	api.HandleFunc("/checkout", fe.requireAuth(fe.placeOrderHandler)).Methods(http.MethodPost)
	api.HandleFunc("/orders", fe.requireAuth(fe.listOrdersHandler)).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", fe.requireAuth(fe.getOrderHandler)).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", fe.registerHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", fe.loginHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", fe.logoutHandler).Methods(http.MethodPost)
	api.HandleFunc("/account", fe.requireAuth(fe.accountHandler)).Methods(http.MethodGet)

	r.HandleFunc("/healthz", fe.healthHandler).Methods(http.MethodGet)
}
