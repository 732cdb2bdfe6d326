package services

import (
	"testing"

	"github.com/DailyMate/dailymate_backend/internal/apperrors"
	"github.com/DailyMate/dailymate_backend/internal/models"

	"gorm.io/gorm"
)

// befriend 承認済みの友達関係を作成
func befriend(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()
	if err := db.Create(&models.Friend{
		RequesterID: a,
		AddresseeID: b,
		Status:      models.FriendStatusAccepted,
	}).Error; err != nil {
		t.Fatalf("友達関係の作成に失敗しました: %v", err)
	}
}

func addDiary(t *testing.T, service DiaryService, userID uint, date string, openType models.OpenType) *models.Diary {
	t.Helper()
	diary, err := service.AddDiary(userID, date, "タイトル", "本文", "sunny", "happy", string(openType), nil, nil)
	if err != nil {
		t.Fatalf("日記の作成に失敗しました: %v", err)
	}
	return diary
}

func TestAddDiary(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	diary := addDiary(t, service, user.ID, "2024-03-01", models.OpenTypePrivate)
	if diary.ID == 0 {
		t.Fatal("IDが採番されていません")
	}
	if diary.OpenType != models.OpenTypePrivate {
		t.Errorf("open_type = %s, want private", diary.OpenType)
	}
}

func TestAddDiaryBlankTitle(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	_, err := service.AddDiary(user.ID, "2024-03-01", "   ", "本文", "sunny", "happy", "private", nil, nil)
	if !apperrors.IsBadRequest(err) {
		t.Errorf("err = %v, want BadRequestError", err)
	}
}

func TestAddDiaryInvalidEnum(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	cases := []struct {
		name                       string
		weather, feeling, openType string
	}{
		{"天気が不正", "stormy", "happy", "private"},
		{"気分が不正", "sunny", "great", "private"},
		{"公開範囲が不正", "sunny", "happy", "secret"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.AddDiary(user.ID, "2024-03-01", "タイトル", "", tc.weather, tc.feeling, tc.openType, nil, nil)
			if !apperrors.IsBadRequest(err) {
				t.Errorf("err = %v, want BadRequestError", err)
			}
		})
	}
}

func TestAddDiaryDuplicateDate(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	addDiary(t, service, user.ID, "2024-03-01", models.OpenTypePrivate)

	// 同じ日付の2件目は失敗する
	_, err := service.AddDiary(user.ID, "2024-03-01", "2件目", "", "sunny", "happy", "private", nil, nil)
	if !apperrors.IsBadRequest(err) {
		t.Errorf("err = %v, want BadRequestError", err)
	}

	// 別のユーザーなら同じ日付でも作成できる
	other := createTestUser(t, db, "b@example.com", "bob")
	if _, err := service.AddDiary(other.ID, "2024-03-01", "タイトル", "", "sunny", "happy", "private", nil, nil); err != nil {
		t.Errorf("別ユーザーの同一日付で失敗しました: %v", err)
	}
}

func TestAddDiaryWithImage(t *testing.T) {
	service, db, images := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	file, header := testImage("photo.png")
	diary, err := service.AddDiary(user.ID, "2024-03-01", "タイトル", "本文", "sunny", "happy", "private", file, header)
	if err != nil {
		t.Fatalf("日記の作成に失敗しました: %v", err)
	}
	if images.uploads != 1 {
		t.Errorf("uploads = %d, want 1", images.uploads)
	}
	if diary.Image == "" {
		t.Error("画像URLが設定されていません")
	}
}

func TestUpdateDiaryReplacesImage(t *testing.T) {
	service, db, images := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	file, header := testImage("before.png")
	diary, err := service.AddDiary(user.ID, "2024-03-01", "タイトル", "本文", "sunny", "happy", "private", file, header)
	if err != nil {
		t.Fatalf("日記の作成に失敗しました: %v", err)
	}
	oldURL := diary.Image

	// 新しい画像で修正すると、差し替え前の画像がストレージから削除される
	file, header = testImage("after.png")
	updated, err := service.UpdateDiary(diary.ID, user.ID, "2024-03-01", "タイトル", "本文", "sunny", "happy", "private", file, header)
	if err != nil {
		t.Fatalf("修正に失敗しました: %v", err)
	}
	if updated.Image == "" || updated.Image == oldURL {
		t.Errorf("画像が差し替えられていません: %s", updated.Image)
	}
	if len(images.deletes) != 1 || images.deletes[0] != oldURL {
		t.Errorf("deletes = %v, want [%s]", images.deletes, oldURL)
	}
	if images.uploads != 2 {
		t.Errorf("uploads = %d, want 2", images.uploads)
	}

	// 画像を添付しない修正では既存の画像を保持する
	kept, err := service.UpdateDiary(diary.ID, user.ID, "2024-03-01", "タイトル", "別の本文", "sunny", "happy", "private", nil, nil)
	if err != nil {
		t.Fatalf("修正に失敗しました: %v", err)
	}
	if kept.Image != updated.Image {
		t.Errorf("image = %s, want %s", kept.Image, updated.Image)
	}
	if len(images.deletes) != 1 {
		t.Errorf("画像なしの修正で削除が発生しています: %v", images.deletes)
	}
}

func TestUpdateDiary(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")
	diary := addDiary(t, service, user.ID, "2024-03-01", models.OpenTypePrivate)

	// 日付を変えずに内容だけ修正できる
	updated, err := service.UpdateDiary(diary.ID, user.ID, "2024-03-01", "修正後", "新しい本文", "rainy", "sad", "public", nil, nil)
	if err != nil {
		t.Fatalf("修正に失敗しました: %v", err)
	}
	if updated.Title != "修正後" || updated.Weather != models.WeatherRainy || updated.OpenType != models.OpenTypePublic {
		t.Errorf("修正が反映されていません: %+v", updated)
	}

	// 日付の変更もできる
	if _, err := service.UpdateDiary(diary.ID, user.ID, "2024-03-02", "修正後", "", "rainy", "sad", "public", nil, nil); err != nil {
		t.Errorf("日付の変更に失敗しました: %v", err)
	}
}

func TestUpdateDiaryDateConflict(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")
	addDiary(t, service, user.ID, "2024-03-01", models.OpenTypePrivate)
	second := addDiary(t, service, user.ID, "2024-03-02", models.OpenTypePrivate)

	// 既に日記のある日付への変更は失敗する
	_, err := service.UpdateDiary(second.ID, user.ID, "2024-03-01", "タイトル", "", "sunny", "happy", "private", nil, nil)
	if !apperrors.IsBadRequest(err) {
		t.Errorf("err = %v, want BadRequestError", err)
	}
}

func TestUpdateDiaryNotFound(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	_, err := service.UpdateDiary(9999, user.ID, "2024-03-01", "タイトル", "", "sunny", "happy", "private", nil, nil)
	if !apperrors.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestUpdateDiaryAlreadyDeleted(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")
	diary := addDiary(t, service, user.ID, "2024-03-01", models.OpenTypePrivate)

	if err := service.DeleteDiary(diary.ID, user.ID); err != nil {
		t.Fatalf("削除に失敗しました: %v", err)
	}

	// ソフトデリート済みの日記の修正は常にNotFound
	_, err := service.UpdateDiary(diary.ID, user.ID, "2024-03-01", "タイトル", "", "sunny", "happy", "private", nil, nil)
	if !apperrors.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestUpdateDiaryForbidden(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	owner := createTestUser(t, db, "a@example.com", "alice")
	other := createTestUser(t, db, "b@example.com", "bob")
	diary := addDiary(t, service, owner.ID, "2024-03-01", models.OpenTypePublic)

	// 作成者以外の修正は失敗する
	_, err := service.UpdateDiary(diary.ID, other.ID, "2024-03-01", "タイトル", "", "sunny", "happy", "private", nil, nil)
	if !apperrors.IsForbidden(err) {
		t.Errorf("err = %v, want ForbiddenError", err)
	}
}

func TestDeleteDiary(t *testing.T) {
	service, db, images := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")
	diary := addDiary(t, service, user.ID, "2024-03-01", models.OpenTypePublic)

	// 画像といいねを付けておく
	if err := db.Model(&models.Diary{}).Where("id = ?", diary.ID).Update("image", "https://images.test/1.png").Error; err != nil {
		t.Fatal(err)
	}
	if _, _, err := service.ToggleLike(diary.ID, user.ID); err != nil {
		t.Fatal(err)
	}

	if err := service.DeleteDiary(diary.ID, user.ID); err != nil {
		t.Fatalf("削除に失敗しました: %v", err)
	}

	// 画像が削除されている
	if len(images.deletes) != 1 {
		t.Errorf("画像削除の回数 = %d, want 1", len(images.deletes))
	}

	// いいねも削除されている
	var likes int64
	db.Model(&models.LikeDiary{}).Where("diary_id = ?", diary.ID).Count(&likes)
	if likes != 0 {
		t.Errorf("いいね数 = %d, want 0", likes)
	}

	// 2回目の削除はNotFound
	if err := service.DeleteDiary(diary.ID, user.ID); !apperrors.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}

	// 削除後はその日付に再作成できる
	if _, err := service.AddDiary(user.ID, "2024-03-01", "再作成", "", "sunny", "happy", "private", nil, nil); err != nil {
		t.Errorf("削除後の再作成に失敗しました: %v", err)
	}
}

func TestDeleteDiaryForbidden(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	owner := createTestUser(t, db, "a@example.com", "alice")
	other := createTestUser(t, db, "b@example.com", "bob")
	diary := addDiary(t, service, owner.ID, "2024-03-01", models.OpenTypePublic)

	if err := service.DeleteDiary(diary.ID, other.ID); !apperrors.IsForbidden(err) {
		t.Errorf("err = %v, want ForbiddenError", err)
	}
}

func TestToggleLike(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	owner := createTestUser(t, db, "a@example.com", "alice")
	viewer := createTestUser(t, db, "b@example.com", "bob")
	diary := addDiary(t, service, owner.ID, "2024-03-01", models.OpenTypePublic)

	// 1回目のトグルでいいねが付く
	liked, count, err := service.ToggleLike(diary.ID, viewer.ID)
	if err != nil {
		t.Fatalf("トグルに失敗しました: %v", err)
	}
	if !liked || count != 1 {
		t.Errorf("liked = %v, count = %d, want true, 1", liked, count)
	}

	// 2回目のトグルで元の状態に戻る
	liked, count, err = service.ToggleLike(diary.ID, viewer.ID)
	if err != nil {
		t.Fatalf("トグルに失敗しました: %v", err)
	}
	if liked || count != 0 {
		t.Errorf("liked = %v, count = %d, want false, 0", liked, count)
	}
}

func TestToggleLikeInvisibleDiary(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	owner := createTestUser(t, db, "a@example.com", "alice")
	stranger := createTestUser(t, db, "b@example.com", "bob")
	diary := addDiary(t, service, owner.ID, "2024-03-01", models.OpenTypePrivate)

	// 閲覧できない日記にはいいねできない
	if _, _, err := service.ToggleLike(diary.ID, stranger.ID); !apperrors.IsForbidden(err) {
		t.Errorf("err = %v, want ForbiddenError", err)
	}
}

func TestFindDiary(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")
	viewer := createTestUser(t, db, "b@example.com", "bob")
	diary := addDiary(t, service, user.ID, "2024-03-01", models.OpenTypePublic)

	if _, _, err := service.ToggleLike(diary.ID, viewer.ID); err != nil {
		t.Fatal(err)
	}

	found, err := service.FindDiary("2024-03-01", user.ID)
	if err != nil {
		t.Fatalf("取得に失敗しました: %v", err)
	}
	if found == nil {
		t.Fatal("日記が取得できません")
	}
	if found.LikeCount != 1 {
		t.Errorf("like_count = %d, want 1", found.LikeCount)
	}
	if found.IsLiked {
		t.Error("本人はいいねしていないのに is_liked = true")
	}

	// 日記のない日は nil を返す
	absent, err := service.FindDiary("2024-03-02", user.ID)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if absent != nil {
		t.Errorf("absent = %+v, want nil", absent)
	}
}

func TestFindFriendDiaryVisibility(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	owner := createTestUser(t, db, "a@example.com", "alice")
	friend := createTestUser(t, db, "b@example.com", "bob")
	stranger := createTestUser(t, db, "c@example.com", "carol")
	befriend(t, db, owner.ID, friend.ID)

	public := addDiary(t, service, owner.ID, "2024-03-01", models.OpenTypePublic)
	friendOnly := addDiary(t, service, owner.ID, "2024-03-02", models.OpenTypeFriend)
	private := addDiary(t, service, owner.ID, "2024-03-03", models.OpenTypePrivate)

	cases := []struct {
		name    string
		diaryID uint
		viewer  uint
		visible bool
	}{
		{"公開日記は誰でも閲覧できる", public.ID, stranger.ID, true},
		{"友達公開は友達が閲覧できる", friendOnly.ID, friend.ID, true},
		{"友達公開は他人には見えない", friendOnly.ID, stranger.ID, false},
		{"非公開は友達にも見えない", private.ID, friend.ID, false},
		{"非公開でも本人は閲覧できる", private.ID, owner.ID, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diary, err := service.FindFriendDiary(tc.diaryID, tc.viewer)
			if tc.visible {
				if err != nil {
					t.Fatalf("err = %v, want nil", err)
				}
				if diary == nil {
					t.Fatal("日記が取得できません")
				}
			} else {
				if !apperrors.IsForbidden(err) {
					t.Errorf("err = %v, want ForbiddenError", err)
				}
			}
		})
	}
}

func TestFindFriendDiaryDeleted(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	owner := createTestUser(t, db, "a@example.com", "alice")
	diary := addDiary(t, service, owner.ID, "2024-03-01", models.OpenTypePublic)

	if err := service.DeleteDiary(diary.ID, owner.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := service.FindFriendDiary(diary.ID, owner.ID); !apperrors.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestFindDiaryByMonth(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	addDiary(t, service, user.ID, "2024-03-01", models.OpenTypePrivate)
	addDiary(t, service, user.ID, "2024-03-15", models.OpenTypePrivate)
	// 別の月の日記は含まれない
	addDiary(t, service, user.ID, "2024-04-01", models.OpenTypePrivate)

	monthly, err := service.FindDiaryByMonth("2024-03", user.ID)
	if err != nil {
		t.Fatalf("取得に失敗しました: %v", err)
	}

	// 日記のある日だけがキーとして存在する
	if len(monthly) != 2 {
		t.Fatalf("len(monthly) = %d, want 2", len(monthly))
	}
	for _, day := range []int{1, 15} {
		entry, ok := monthly[day]
		if !ok {
			t.Errorf("%d日の日記がありません", day)
			continue
		}
		if entry.ID == 0 {
			t.Errorf("%d日のIDが設定されていません", day)
		}
	}
}

func TestFindDiaryByMonthInvalidDate(t *testing.T) {
	service, db, _ := newTestDiaryService(t)
	user := createTestUser(t, db, "a@example.com", "alice")

	if _, err := service.FindDiaryByMonth("2024/03", user.ID); !apperrors.IsBadRequest(err) {
		t.Errorf("err = %v, want BadRequestError", err)
	}
}
