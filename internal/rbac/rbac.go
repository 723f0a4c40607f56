package rbac

// Role constants
const (
	RoleDonor       = "donor"
	RoleBeneficiary = "beneficiary"
	RoleAdmin       = "admin"
)

// Permission constants
const (
	PermDonate          = "donate"
	PermCreateCampaign  = "create_campaign"
	PermApproveCampaign = "approve_campaign"
	PermRequestWithdraw = "request_withdraw"
	PermResolveWithdraw = "resolve_withdraw"
	PermManageRewards   = "manage_rewards"
	PermRedeemReward    = "redeem_reward"
	PermViewRevenue     = "view_revenue"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleDonor: {
		PermDonate, PermRedeemReward,
	},
	RoleBeneficiary: {
		PermDonate, PermRedeemReward, PermCreateCampaign, PermRequestWithdraw,
	},
	RoleAdmin: {
		PermDonate, PermRedeemReward, PermCreateCampaign, PermRequestWithdraw,
		PermApproveCampaign, PermResolveWithdraw, PermManageRewards, PermViewRevenue,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// IsDisbursing checks if a permission releases funds (admin-only).
func IsDisbursing(permission string) bool {
	return permission == PermResolveWithdraw
}
