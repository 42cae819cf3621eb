// Package models provides shared data models and types for create-aptos-dapp.
//
// This package contains the enums and the Selection value that flow from the
// interactive wizard into the scaffolding pipeline.
//
// # Networks
//
// Three Aptos networks are recognized:
//   - Mainnet: production network
//   - Testnet: public test network (default)
//   - Devnet: frequently reset development network
//
// Use [ParseNetwork] to convert user input:
//
//	n, err := models.ParseNetwork("testnet")
//	if err == nil && n.IsValid() {
//	    fmt.Println("network:", n)
//	}
//
// # Project Types
//
// Projects are either full-stack dapps ([ProjectTypeFullstack]) or Move-only
// contract packages ([ProjectTypeMove]). The project type gates which wizard
// questions are asked.
//
// # Selection
//
// [Selection] is the complete set of answers. It is built by the wizard and
// passed by value through the pipeline once prompting is finished.
package models
