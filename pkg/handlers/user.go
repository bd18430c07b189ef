package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ziggoon/tinyDEM/pkg/session"
	"github.com/ziggoon/tinyDEM/pkg/user"
)

const invalidCredsMsg = "Invalid username or password."

type LoginForm struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=72"`
}

type RegisterForm struct {
	Username string `validate:"required,alphanum,max=64"`
	Password string `validate:"required,min=6,max=72"`
	Admin    string `validate:"omitempty,oneof=0 1 on"`
}

// AuthView is the data for the login and register pages.
type AuthView struct {
	Error string
}

type UserHandler struct {
	Service      user.ServiceInterface
	Render       Renderer
	Logger       *slog.Logger
	SecureCookie bool

	validate *validator.Validate
}

func NewUserHandler(service user.ServiceInterface, render Renderer, logger *slog.Logger, secureCookie bool) *UserHandler {
	return &UserHandler{
		Service:      service,
		Render:       render,
		Logger:       logger,
		SecureCookie: secureCookie,
		validate:     validator.New(),
	}
}

func (h *UserHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.html(w, http.StatusOK, "register.html", AuthView{})
}

func (h *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.html(w, http.StatusOK, "login.html", AuthView{})
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeRegisterForm(w, r)
	if !ok {
		return
	}

	admin := form.Admin == "1" || form.Admin == "on"
	err := h.Service.Register(form.Username, form.Password, admin)
	switch {
	case errors.Is(err, user.ErrAlreadyExists):
		h.html(w, http.StatusConflict, "register.html", AuthView{Error: "username already taken"})
	case err != nil:
		h.Logger.Error("register", "error", err)
		h.html(w, http.StatusInternalServerError, "register.html", AuthView{Error: "Something went wrong, try again later."})
	default:
		h.Logger.Info("register", "user", form.Username)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	// A malformed login attempt gets the same collapsed message as a
	// failed one, so nothing leaks about which field was wrong.
	if err := h.validate.Struct(form); err != nil {
		h.html(w, http.StatusUnauthorized, "login.html", AuthView{Error: invalidCredsMsg})
		return
	}

	u, token, err := h.Service.Login(form.Username, form.Password)
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, user.ErrInvalidCredential):
		// Distinct internally for diagnostics, identical to the user.
		h.Logger.Info("login rejected", "user", form.Username, "reason", err.Error())
		h.html(w, http.StatusUnauthorized, "login.html", AuthView{Error: invalidCredsMsg})
	case err != nil:
		h.Logger.Error("login", "error", err)
		h.html(w, http.StatusInternalServerError, "login.html", AuthView{Error: "Something went wrong, try again later."})
	default:
		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(session.TTL),
			HttpOnly: true,
			Secure:   h.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		h.Logger.Info("login", "user", u.Username)
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}
}

func (h *UserHandler) decodeRegisterForm(w http.ResponseWriter, r *http.Request) (RegisterForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return RegisterForm{}, false
	}
	form := RegisterForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Admin:    r.PostFormValue("admin"),
	}
	if err := h.validate.Struct(form); err != nil {
		h.html(w, http.StatusBadRequest, "register.html", AuthView{
			Error: "username must be alphanumeric and the password at least 6 characters",
		})
		return RegisterForm{}, false
	}
	return form, true
}

func (h *UserHandler) html(w http.ResponseWriter, status int, name string, data any) {
	if err := h.Render.HTML(w, status, name, data); err != nil {
		h.Logger.Error("render", "template", name, "error", err)
	}
}
