package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	luno "github.com/dunxen/luno-go"
	"github.com/dunxen/luno-go/internal/config"
	"github.com/dunxen/luno-go/internal/monitor"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// A missing .env is fine; credentials may come from the real
	// environment or a config file.
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "luno",
		Usage:   "Luno exchange command line client",
		Version: fmt.Sprintf("%s (build: %s, commit: %s)", Version, BuildTime, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "ticker",
				Usage:  "show the ticker for a trading pair",
				Flags:  []cli.Flag{pairFlag()},
				Action: cmdTicker,
			},
			{
				Name:   "tickers",
				Usage:  "show tickers for all trading pairs",
				Action: cmdTickers,
			},
			{
				Name:  "orderbook",
				Usage: "show the order book for a trading pair",
				Flags: []cli.Flag{
					pairFlag(),
					&cli.BoolFlag{
						Name:  "full",
						Usage: "fetch the full book instead of the top 100 levels",
					},
				},
				Action: cmdOrderbook,
			},
			{
				Name:   "trades",
				Usage:  "show recent market trades for a trading pair",
				Flags:  []cli.Flag{pairFlag()},
				Action: cmdTrades,
			},
			{
				Name:   "balance",
				Usage:  "show account balances",
				Action: cmdBalance,
			},
			{
				Name:  "orders",
				Usage: "list recently placed orders",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "state",
						Usage: "filter by state (PENDING or COMPLETE)",
					},
					&cli.StringFlag{
						Name:  "pair",
						Usage: "filter by trading pair",
					},
				},
				Action: cmdListOrders,
			},
			{
				Name:      "order",
				Usage:     "show an order by id",
				ArgsUsage: "ORDER_ID",
				Action:    cmdGetOrder,
			},
			{
				Name:      "cancel",
				Usage:     "request cancellation of an order",
				ArgsUsage: "ORDER_ID",
				Action:    cmdCancelOrder,
			},
			{
				Name:  "limit-order",
				Usage: "place a limit order",
				Flags: []cli.Flag{
					pairFlag(),
					&cli.StringFlag{
						Name:     "type",
						Aliases:  []string{"t"},
						Usage:    "order side (ASK or BID)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "volume",
						Aliases:  []string{"v"},
						Usage:    "base currency volume",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "price",
						Aliases:  []string{"p"},
						Usage:    "limit price",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "post-only",
						Usage: "reject the order rather than execute as taker",
					},
				},
				Action: cmdLimitOrder,
			},
			{
				Name:   "fees",
				Usage:  "show fees and 30 day volume for a trading pair",
				Flags:  []cli.Flag{pairFlag()},
				Action: cmdFees,
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if c.String("log-level") != "" {
				cfg.Log.Level = c.String("log-level")
			}
			c.App.Metadata["config"] = cfg
			c.App.Metadata["logger"] = monitor.NewLogger(cfg.Log.Level, cfg.Log.Output)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func pairFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "pair",
		Aliases: []string{"s"},
		Value:   "XBTZAR",
		Usage:   "trading pair symbol",
	}
}

func newClient(c *cli.Context) (*luno.Client, error) {
	cfg := c.App.Metadata["config"].(*config.Config)
	logger := c.App.Metadata["logger"].(*monitor.Logger)

	opts := []luno.Option{luno.WithLogger(logger.Logger)}
	if cfg.Luno.APIBaseURL != "" {
		opts = append(opts, luno.WithBaseURL(cfg.Luno.APIBaseURL))
	}
	return luno.NewClient(cfg.Luno.APIKey, cfg.Luno.APISecret, opts...)
}

func parsePair(c *cli.Context) (luno.TradingPair, error) {
	return luno.ParseTradingPair(c.String("pair"))
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func cmdTicker(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	pair, err := parsePair(c)
	if err != nil {
		return err
	}
	ticker, err := client.GetTicker(pair)
	if err != nil {
		return err
	}
	return printJSON(ticker)
}

func cmdTickers(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	tickers, err := client.GetTickers()
	if err != nil {
		return err
	}
	return printJSON(tickers)
}

func cmdOrderbook(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	pair, err := parsePair(c)
	if err != nil {
		return err
	}
	var book *luno.Orderbook
	if c.Bool("full") {
		book, err = client.GetOrderbook(pair)
	} else {
		book, err = client.GetOrderbookTop(pair)
	}
	if err != nil {
		return err
	}
	return printJSON(book)
}

func cmdTrades(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	pair, err := parsePair(c)
	if err != nil {
		return err
	}
	trades, err := client.GetTrades(pair)
	if err != nil {
		return err
	}
	return printJSON(trades)
}

func cmdBalance(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	balances, err := client.ListBalances().List()
	if err != nil {
		return err
	}
	return printJSON(balances)
}

func cmdListOrders(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	query := client.ListOrders()
	if state := c.String("state"); state != "" {
		switch state {
		case "PENDING":
			query = query.FilterState(luno.OrderStatePending)
		case "COMPLETE":
			query = query.FilterState(luno.OrderStateComplete)
		default:
			return fmt.Errorf("invalid state %q: must be PENDING or COMPLETE", state)
		}
	}
	if raw := c.String("pair"); raw != "" {
		pair, err := luno.ParseTradingPair(raw)
		if err != nil {
			return err
		}
		query = query.FilterPair(pair)
	}
	orders, err := query.List()
	if err != nil {
		return err
	}
	return printJSON(orders)
}

func cmdGetOrder(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: luno order ORDER_ID")
	}
	client, err := newClient(c)
	if err != nil {
		return err
	}
	order, err := client.GetOrder(c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(order)
}

func cmdCancelOrder(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: luno cancel ORDER_ID")
	}
	client, err := newClient(c)
	if err != nil {
		return err
	}
	resp, err := client.StopOrder(c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func cmdLimitOrder(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	pair, err := parsePair(c)
	if err != nil {
		return err
	}

	var orderType luno.LimitOrderType
	switch c.String("type") {
	case "ASK":
		orderType = luno.LimitOrderAsk
	case "BID":
		orderType = luno.LimitOrderBid
	default:
		return fmt.Errorf("invalid type %q: must be ASK or BID", c.String("type"))
	}

	volume, err := decimal.NewFromString(c.String("volume"))
	if err != nil {
		return fmt.Errorf("invalid volume: %w", err)
	}
	price, err := decimal.NewFromString(c.String("price"))
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}

	order := client.LimitOrder(pair, orderType, volume, price)
	if c.Bool("post-only") {
		order = order.PostOnly()
	}
	resp, err := order.Post()
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func cmdFees(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	pair, err := parsePair(c)
	if err != nil {
		return err
	}
	fees, err := client.GetFeeInfo(pair)
	if err != nil {
		return err
	}
	return printJSON(fees)
}
