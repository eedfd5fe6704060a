package models

import "time"

type PushToken struct {
	User_Push_Token_ID int       `json:"user_push_token_id" goqu:"skipinsert"`
	User_Profile_ID    int       `json:"user_profile_id"`
	Push_Token         string    `json:"push_token"`
	Platform           string    `json:"platform"`
	Datetime_Create    time.Time `json:"datetime_create" goqu:"skipinsert"`
	Datetime_Update    time.Time `json:"datetime_update" goqu:"skipinsert"`
}

type PushTokenRequest struct {
	Push_Token string `json:"push_token" binding:"required"`
	Platform   string `json:"platform" binding:"required,oneof=ios android"`
}
