package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		expected   bool
	}{
		{RoleDonor, PermDonate, true},
		{RoleDonor, PermRedeemReward, true},
		{RoleDonor, PermCreateCampaign, false},
		{RoleDonor, PermApproveCampaign, false},

		{RoleBeneficiary, PermCreateCampaign, true},
		{RoleBeneficiary, PermRequestWithdraw, true},
		{RoleBeneficiary, PermResolveWithdraw, false},
		{RoleBeneficiary, PermViewRevenue, false},

		{RoleAdmin, PermApproveCampaign, true},
		{RoleAdmin, PermResolveWithdraw, true},
		{RoleAdmin, PermManageRewards, true},
		{RoleAdmin, PermViewRevenue, true},

		{"nonexistent", PermDonate, false},
		{RoleAdmin, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestIsDisbursing(t *testing.T) {
	if !IsDisbursing(PermResolveWithdraw) {
		t.Error("resolve_withdraw moves money, IsDisbursing should be true")
	}
	if IsDisbursing(PermDonate) {
		t.Error("donate is not a disbursing permission")
	}
}
