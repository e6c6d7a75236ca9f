package auth

import "store-ratings/internal/domain"

// 动作常量：路由注册时声明需要的动作，鉴权只看 (role, action)。
// 资源归属（店主只能看自己门店等）在服务层按数据判断。
const (
	ActionManagePlatform = "platform.manage"  // 后台：用户/门店管理、统计
	ActionBrowseStores   = "stores.browse"    // 浏览门店列表
	ActionRateStores     = "stores.rate"      // 提交/修改/删除自己的评分
	ActionViewOwnerStats = "stores.ownerView" // 查看自己门店的评分
	ActionManageAccount  = "account.self"     // 改密码、查个人资料
)

var policy = map[string]map[string]bool{
	domain.RoleAdmin: {
		ActionManagePlatform: true,
		ActionBrowseStores:   true,
		ActionManageAccount:  true,
	},
	domain.RoleOwner: {
		ActionBrowseStores:   true,
		ActionViewOwnerStats: true,
		ActionManageAccount:  true,
	},
	domain.RoleUser: {
		ActionBrowseStores:  true,
		ActionRateStores:    true,
		ActionManageAccount: true,
	},
}

// Can 统一的授权判定，所有路由共用，不在各 handler 里重复判角色。
func Can(role, action string) bool {
	return policy[role][action]
}
