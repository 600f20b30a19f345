package handlers

import (
	"github.com/memberhub/memberhub/internal/app/service/analytics"
	"github.com/memberhub/memberhub/internal/app/service/identity"
	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespAuth wraps the registration/login result in the standard envelope.
type RespAuth struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    identity.AuthResult      `json:"data"`
}

type RespUser struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.User              `json:"data"`
}

type RespUserList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.User            `json:"data"`
}

type RespLevel struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.MembershipLevel   `json:"data"`
}

type RespLevelList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.MembershipLevel `json:"data"`
}

type RespMembership struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.UserMembership    `json:"data"`
}

type RespMembershipList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.UserMembership  `json:"data"`
}

type RespContent struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Content           `json:"data"`
}

type RespContentList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.Content         `json:"data"`
}

type RespSubscription struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Subscription      `json:"data"`
}

type RespSubscriptionList struct {
	Code    response.APIResponseCode  `json:"code"`
	Message string                    `json:"message"`
	Data    listSubscriptionsResponse `json:"data"`
}

type RespAffiliate struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Affiliate         `json:"data"`
}

type RespAffiliateList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.Affiliate       `json:"data"`
}

type RespReferral struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.AffiliateReferral `json:"data"`
}

type RespReferralList struct {
	Code    response.APIResponseCode   `json:"code"`
	Message string                     `json:"message"`
	Data    []models.AffiliateReferral `json:"data"`
}

type RespPayout struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.AffiliatePayout   `json:"data"`
}

type RespPayoutList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.AffiliatePayout `json:"data"`
}

type RespDashboard struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    analytics.Dashboard      `json:"data"`
}

type RespAffiliateStats struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    analytics.AffiliateStats `json:"data"`
}
