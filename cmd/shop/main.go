package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbrands/storefront-backend/internal/cart"
	"github.com/arbrands/storefront-backend/internal/clientstate"
	"github.com/arbrands/storefront-backend/pkg/env"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	defaultState := ".arbrands-shop"
	if home, err := os.UserHomeDir(); err == nil {
		defaultState = filepath.Join(home, ".arbrands-shop")
	}

	apiURL := flag.String("api", env.Get("ARBRANDS_SHOP_API_URL", "http://localhost:8080"), "storefront API base URL")
	stateDir := flag.String("state", env.Get("ARBRANDS_SHOP_STATE_DIR", defaultState), "client state directory")
	whatsapp := flag.String("whatsapp", env.Get("ARBRANDS_CHECKOUT_WHATSAPP_NUMBER", "1234567890"), "WhatsApp number for checkout")
	flag.Parse()

	store, err := clientstate.Open(*stateDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open state store:", err)
		os.Exit(1)
	}

	engine, err := cart.NewEngine(clientstate.NewCartStore(store))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load cart:", err)
		os.Exit(1)
	}

	session := clientstate.NewSession(store)

	u := &ui{
		api:      newAPIClient(*apiURL, session.Token()),
		engine:   engine,
		session:  session,
		whatsapp: *whatsapp,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	u.run()
}
