package service

import (
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSkillRejectsDuplicateName(t *testing.T) {
	e := newTestEnv(t)
	svc := NewSkillService(e.Skills)
	user := createUser(t, e, "alice")

	require.NoError(t, svc.CreateSkill(user.ID, &model.UserSkill{SkillName: "Go"}))

	err := svc.CreateSkill(user.ID, &model.UserSkill{SkillName: "Go"})
	assert.ErrorIs(t, err, util.ErrDuplicateSkill)

	// The same name under another user is fine.
	bob := createUser(t, e, "bob")
	assert.NoError(t, svc.CreateSkill(bob.ID, &model.UserSkill{SkillName: "Go"}))
}

func TestSkillOwnershipScoping(t *testing.T) {
	e := newTestEnv(t)
	svc := NewSkillService(e.Skills)
	alice := createUser(t, e, "alice")
	bob := createUser(t, e, "bob")

	skill := &model.UserSkill{SkillName: "Go", ProficiencyLevel: model.ProficiencyIntermediate}
	require.NoError(t, svc.CreateSkill(alice.ID, skill))

	_, err := svc.UpdateSkill(skill.ID, bob.ID, SkillUpdate{Notes: ptr("mine now")})
	assert.ErrorIs(t, err, util.ErrSkillNotFound)

	err = svc.DeleteSkill(skill.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrSkillNotFound)

	updated, err := svc.UpdateSkill(skill.ID, alice.ID, SkillUpdate{
		ProficiencyLevel:  ptr("expert"),
		YearsOfExperience: ptr(3.5),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProficiencyExpert, updated.ProficiencyLevel)
	assert.Equal(t, 3.5, updated.YearsOfExperience)

	require.NoError(t, svc.DeleteSkill(skill.ID, alice.ID))
	skills, err := svc.ListSkills(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, skills)
}
