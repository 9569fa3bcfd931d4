// Package services contains the application services of the despesas client.
//
// Each service wraps one group of backend endpoints: it sends requests through
// the API client (which handles auth, session expiry and endpoint blocking),
// runs the payload through the matching models normalizer and, where the
// browser client kept state in local storage, persists it in the local
// state store.
//
// Lists never fail on malformed payloads; they come back empty. Single
// fetches return an *client.APIError matching client.ErrUnexpectedResponse
// when the payload holds no usable entity.
package services
