/*
Package session owns the client-side OAuth2 session lifecycle: logging in
against the issuer's password grant, persisting the token pair, handing out a
currently-valid access token (refreshing proactively when expiry is near),
and logging out.

# State machine

A Manager moves between four states:

	Anonymous -> Authenticating -> Authenticated <-> Refreshing

Login drives Anonymous through Authenticating; GetValidAccessToken drives
Authenticated through Refreshing and back. A refresh rejected by the issuer,
or a logout, returns the manager to Anonymous and clears the token store.

# Refresh coalescing

GetValidAccessToken is the single chokepoint for "give me a usable token".
When the stored access token is inside the refresh grace window, the manager
issues one refresh grant; concurrent callers attach to that same in-flight
refresh and all observe its result. At most one refresh is outstanding per
manager at any instant.

# Logout vs in-flight refresh

Logout bumps an internal epoch before clearing the store. A refresh that
settles afterwards sees the stale epoch and discards its result, so a cleared
store is never resurrected by a late refresh response.

# Trust model

Access tokens are decoded without signature verification (see jwtx.Decode).
The derived identity and its roles gate UX only; the backend and the issuer
remain the authority on every request.
*/
package session
