package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vultisig/xrpl-executor/internal/executor"
	"github.com/vultisig/xrpl-executor/internal/logging"
	"github.com/vultisig/xrpl-executor/internal/status"
	"github.com/vultisig/xrpl-executor/internal/xrp"
)

var (
	node    = flag.String("node", "https://s1.ripple.com:51234", "rippled JSON-RPC url")
	command = flag.String("cmd", "", "command to execute: validate, estimate, state, wait")
	address = flag.String("address", "", "address to validate")
	tag     = flag.String("tag", "", "destination tag to validate")
	txID    = flag.String("tx", "", "transaction id")
	timeout = flag.Duration("timeout", 5*time.Minute, "wait timeout")
)

var commands = map[string]func(context.Context, *executor.Executor) error{
	"validate": validate,
	"estimate": estimate,
	"state":    state,
	"wait":     wait,
}

func main() {
	flag.Parse()

	run, ok := commands[*command]
	if !ok {
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.NewLogger(logging.LogFormatText, "warn")
	client := xrp.NewClient(*node)
	ex := executor.New(client, nil, executor.Config{}, logger, nil)

	ctx := context.Background()
	err := run(ctx, ex)
	if err != nil {
		panic(err)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func validate(ctx context.Context, ex *executor.Executor) error {
	result, err := ex.Addresses.Validate(ctx, *address, nil, *tag)
	if err != nil {
		return fmt.Errorf("failed to validate address: %w", err)
	}
	return printJSON(map[string]any{"address": *address, "result": result})
}

func estimate(ctx context.Context, ex *executor.Executor) error {
	fee, err := ex.Fees.Estimate(ctx)
	if err != nil {
		return fmt.Errorf("failed to estimate fee: %w", err)
	}
	return printJSON(map[string]any{"asset": fee.Asset.ID, "amount": fee.Amount, "drops": fee.Amount.Shift(6).Ceil()})
}

func state(ctx context.Context, ex *executor.Executor) error {
	st, err := ex.States.GetState(ctx, *txID)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}
	return printJSON(map[string]any{"tx": *txID, "state": st})
}

func wait(ctx context.Context, ex *executor.Executor) error {
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	started := time.Now()
	st, err := status.NewStatus(ex.States, 2*time.Second).WaitMined(ctx, *txID)
	if err != nil {
		return fmt.Errorf("failed to wait for transaction: %w", err)
	}
	return printJSON(map[string]any{
		"tx":      *txID,
		"state":   st,
		"seconds": decimal.NewFromFloat(time.Since(started).Seconds()).Round(1),
	})
}
