package mysql

import (
	"Buddy_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommunityMemberRepository 只在事务内使用，DB 传 tx
type CommunityMemberRepository struct {
	DB *gorm.DB
}

// Join 已是成员时 changed=false
func (r *CommunityMemberRepository) Join(communityID, userID string) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&model.CommunityMember{CommunityID: communityID, UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CommunityMemberRepository) Leave(communityID, userID string) (bool, error) {
	res := r.DB.Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&model.CommunityMember{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
