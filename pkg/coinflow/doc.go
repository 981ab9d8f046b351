// Package coinflow runs the complete coin walkthrough against a local or
// test network: fund both accounts from the faucet, compile and publish
// the coin package, register the coin store, mint to the local account
// and transfer to the recipient.
//
//	report, err := coinflow.Run(ctx, coinflow.Options{
//		Config:     config,
//		PackageDir: "./move/stable_coin",
//	})
//	var stepErr *coinflow.StepError
//	if errors.As(err, &stepErr) {
//		log.Printf("stopped at %s: %v", stepErr.Step, stepErr.Err)
//	}
//
// When the Move compiler is not installed, Run calls Options.Prompt so the
// package can be compiled by hand before it continues.
//
// This package is part of the Move SDK for Go.
package coinflow
