package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arbrands/storefront-backend/internal/cart"
	"github.com/arbrands/storefront-backend/internal/checkout"
	"github.com/arbrands/storefront-backend/internal/clientstate"
	"github.com/arbrands/storefront-backend/internal/products"
	"github.com/google/uuid"
)

type ui struct {
	api      *apiClient
	engine   *cart.Engine
	session  *clientstate.Session
	whatsapp string

	in  *bufio.Reader
	out io.Writer

	// last product listing shown, so cart actions can reference items by
	// their row number instead of a uuid
	listing []products.ProductDTO
}

func (u *ui) run() {
	for {
		fmt.Fprintln(u.out, "\n=== AR Brands ===")
		if account := u.session.Account(); account != nil {
			fmt.Fprintf(u.out, "signed in as %s\n", account.Email)
		}
		fmt.Fprintln(u.out, "1) Browse products")
		fmt.Fprintln(u.out, "2) Search products")
		fmt.Fprintln(u.out, "3) Add to cart")
		fmt.Fprintln(u.out, "4) View cart")
		fmt.Fprintln(u.out, "5) Change quantity")
		fmt.Fprintln(u.out, "6) Remove from cart")
		fmt.Fprintln(u.out, "7) Checkout via WhatsApp")
		fmt.Fprintln(u.out, "8) Login")
		fmt.Fprintln(u.out, "9) Register")
		fmt.Fprintln(u.out, "10) Logout")
		fmt.Fprintln(u.out, "0) Exit")
		fmt.Fprint(u.out, "> ")

		switch strings.TrimSpace(u.readLine()) {
		case "1":
			u.browse("")
		case "2":
			fmt.Fprint(u.out, "search: ")
			u.browse(strings.TrimSpace(u.readLine()))
		case "3":
			u.addToCart()
		case "4":
			u.viewCart()
		case "5":
			u.changeQuantity()
		case "6":
			u.removeFromCart()
		case "7":
			u.checkout()
		case "8":
			u.login()
		case "9":
			u.register()
		case "10":
			u.logout()
		default:
			return
		}
	}
}

func (u *ui) browse(search string) {
	list, err := u.api.ListProducts(search)
	if err != nil {
		fmt.Fprintln(u.out, "error:", err)
		return
	}
	u.listing = list
	if len(list) == 0 {
		fmt.Fprintln(u.out, "no products found")
		return
	}
	for i, p := range list {
		line := fmt.Sprintf("%d) %s - $%s", i+1, p.Name, p.Price.StringFixed(2))
		if p.CategoryName != nil {
			line += " [" + *p.CategoryName + "]"
		}
		fmt.Fprintln(u.out, line)
	}
}

func (u *ui) addToCart() {
	product, ok := u.pickProduct()
	if !ok {
		return
	}

	fmt.Fprint(u.out, "quantity [1]: ")
	qty := u.readInt(1)
	fmt.Fprint(u.out, "size (optional): ")
	size := strings.TrimSpace(u.readLine())
	fmt.Fprint(u.out, "color (optional): ")
	color := strings.TrimSpace(u.readLine())

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	snapshot := cart.ProductSnapshot{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: image,
	}
	if err := u.engine.Add(snapshot, qty, size, color); err != nil {
		fmt.Fprintln(u.out, "error:", err)
		return
	}
	fmt.Fprintf(u.out, "added %s x%d\n", product.Name, qty)
}

func (u *ui) viewCart() {
	lines := u.engine.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(u.out, "cart is empty")
		return
	}
	for i, line := range lines {
		detail := fmt.Sprintf("%d) %s x%d - $%s", i+1, line.Product.Name, line.Quantity, line.LineTotal().StringFixed(2))
		if line.Size != "" {
			detail += fmt.Sprintf(" (Size: %s)", line.Size)
		}
		if line.Color != "" {
			detail += fmt.Sprintf(" (Color: %s)", line.Color)
		}
		fmt.Fprintln(u.out, detail)
	}
	fmt.Fprintf(u.out, "items: %d, total: $%s\n", u.engine.TotalItems(), u.engine.TotalPrice().StringFixed(2))
}

func (u *ui) changeQuantity() {
	id, ok := u.pickCartProduct()
	if !ok {
		return
	}
	fmt.Fprint(u.out, "new quantity: ")
	qty := u.readInt(0)
	if err := u.engine.SetQuantity(id, qty); err != nil {
		fmt.Fprintln(u.out, "error:", err)
	}
}

func (u *ui) removeFromCart() {
	id, ok := u.pickCartProduct()
	if !ok {
		return
	}
	if err := u.engine.Remove(id); err != nil {
		fmt.Fprintln(u.out, "error:", err)
	}
}

func (u *ui) checkout() {
	lines := u.engine.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(u.out, "cart is empty")
		return
	}
	fmt.Fprintln(u.out, "\nopen this link to send your order:")
	fmt.Fprintln(u.out, checkout.WhatsAppURL(u.whatsapp, lines))
	if err := u.engine.Clear(); err != nil {
		fmt.Fprintln(u.out, "error:", err)
		return
	}
	fmt.Fprintln(u.out, "order sent, cart cleared")
}

func (u *ui) login() {
	email, password := u.readCredentials()
	result, err := u.api.Login(email, password)
	if err != nil {
		fmt.Fprintln(u.out, "error:", err)
		return
	}
	if err := u.session.Save(result.Token, result.Account); err != nil {
		fmt.Fprintln(u.out, "error:", err)
		return
	}
	fmt.Fprintf(u.out, "welcome back, %s\n", result.Account.Email)
}

func (u *ui) register() {
	email, password := u.readCredentials()
	result, err := u.api.Register(email, password)
	if err != nil {
		fmt.Fprintln(u.out, "error:", err)
		return
	}
	if err := u.session.Save(result.Token, result.Account); err != nil {
		fmt.Fprintln(u.out, "error:", err)
		return
	}
	fmt.Fprintf(u.out, "account created for %s\n", result.Account.Email)
}

func (u *ui) logout() {
	u.api.token = ""
	if err := u.session.Clear(); err != nil {
		fmt.Fprintln(u.out, "error:", err)
		return
	}
	fmt.Fprintln(u.out, "signed out")
}

func (u *ui) pickProduct() (products.ProductDTO, bool) {
	if len(u.listing) == 0 {
		fmt.Fprintln(u.out, "browse products first")
		return products.ProductDTO{}, false
	}
	fmt.Fprint(u.out, "product number: ")
	n := u.readInt(0)
	if n < 1 || n > len(u.listing) {
		fmt.Fprintln(u.out, "no such product")
		return products.ProductDTO{}, false
	}
	return u.listing[n-1], true
}

func (u *ui) pickCartProduct() (uuid.UUID, bool) {
	lines := u.engine.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(u.out, "cart is empty")
		return uuid.Nil, false
	}
	u.viewCart()
	fmt.Fprint(u.out, "line number: ")
	n := u.readInt(0)
	if n < 1 || n > len(lines) {
		fmt.Fprintln(u.out, "no such line")
		return uuid.Nil, false
	}
	return lines[n-1].Product.ID, true
}

func (u *ui) readCredentials() (string, string) {
	fmt.Fprint(u.out, "email: ")
	email := strings.TrimSpace(u.readLine())
	fmt.Fprint(u.out, "password: ")
	password := strings.TrimSpace(u.readLine())
	return email, password
}

func (u *ui) readLine() string {
	line, err := u.in.ReadString('\n')
	if err != nil {
		return line
	}
	return strings.TrimRight(line, "\r\n")
}

func (u *ui) readInt(defaultVal int) int {
	raw := strings.TrimSpace(u.readLine())
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return n
}
