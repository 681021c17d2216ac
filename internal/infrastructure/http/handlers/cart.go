package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hiyoshi/pos-register/internal/domain/register"
	"github.com/hiyoshi/pos-register/internal/infrastructure/http/response"
	"github.com/hiyoshi/pos-register/internal/pkg/logger"
)

type CartHandler struct {
	cart *register.Cart
	log  *logger.Logger
}

func NewCartHandler(cart *register.Cart, log *logger.Logger) *CartHandler {
	return &CartHandler{
		cart: cart,
		log:  log,
	}
}

type CartLineResponse struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total int64              `json:"total"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	lines := h.cart.Lines()
	resp := CartResponse{
		Lines: make([]CartLineResponse, 0, len(lines)),
		Total: h.cart.Total(),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, CartLineResponse{
			ProductID: line.ProductID,
			Code:      line.Code,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		})
	}

	response.WriteSuccess(w, resp)
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	code := cartItemCode(r.URL.Path)
	if code == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"code": "item code is required",
		})
		return
	}

	h.cart.Remove(code)
	h.log.Info("Cart line removed", "code", code)
	response.WriteSuccess(w, map[string]int64{"total": h.cart.Total()})
}

func (h *CartHandler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	code := cartItemCode(r.URL.Path)
	if code == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"code": "item code is required",
		})
		return
	}

	value := r.URL.Query().Get("value")
	quantity, err := strconv.Atoi(value)
	if err != nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"value": "value must be an integer",
		})
		return
	}

	if err := h.cart.SetQuantity(code, quantity); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.log.Info("Cart line quantity set", "code", code, "quantity", quantity)
	response.WriteSuccess(w, map[string]int64{"total": h.cart.Total()})
}

// cartItemCode extracts {code} from /cart/items/{code} and
// /cart/items/{code}/quantity.
func cartItemCode(path string) string {
	path = strings.TrimPrefix(path, "/cart/items/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
