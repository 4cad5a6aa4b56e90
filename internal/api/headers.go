package api

// HeaderUserID は利用者IDを渡すリクエストヘッダー
const HeaderUserID = "X-User-ID"
