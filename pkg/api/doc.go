// Package api exposes the vending machine controller over HTTP. Every
// controller command maps 1:1 to an endpoint, and the controller's error
// taxonomy is serialized as a {code, message} payload with one tagged code
// per error kind.
//
//	POST /coins        {"amount": 500}        -> {"balance": 500}
//	POST /selection    {"product_id": "cola"} -> selection confirmation
//	POST /dispense                            -> dispense receipt
//	POST /refund                              -> {"amount_returned": 500}
//	POST /restock      optional {"quantities": {"cola": 5}}
//	POST /shutdown
//	GET  /status
//	GET  /transactions?limit=20
//	GET  /healthz
package api
