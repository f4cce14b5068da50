package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/upperenglish/backend/core/roster"
)

func Test_rosterApi_list(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("Empty dataset", func(t *testing.T) {
		tt := httpTest{path: "/protected/listTeachersStudentsGroups", auth: true, wantCode: http.StatusOK,
			wantData: []byte(`{"teachers":[],"students":[],"groups":[]}`)}
		req, rec := env.newRequest(t, tt)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	tch := env.createTeacher(t, "Ms Smith")
	std1 := env.createStudent(t, "fred")
	env.createStudent(t, "gina")
	grp := env.createGroup(t, "class d")
	if err := env.studentRepo.SetStudentGroup(ctx, std1.ID, grp.ID); err != nil {
		t.Fatalf("SetStudentGroup(): %v", err)
	}

	t.Run("Aggregate with derived members", func(t *testing.T) {
		tt := httpTest{path: "/protected/listTeachersStudentsGroups", auth: true, wantCode: http.StatusOK}
		req, rec := env.newRequest(t, tt)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)

		var rst roster.Roster
		decodeBody(t, rec, &rst)
		if len(rst.Teachers) != 1 || rst.Teachers[0].ID != tch.ID {
			t.Errorf("Teachers = %v; want [%s]", rst.Teachers, tch.ID)
		}
		if len(rst.Students) != 2 {
			t.Errorf("Students = %v; want 2 entries", rst.Students)
		}
		if len(rst.Groups) != 1 {
			t.Fatalf("Groups = %v; want 1 entry", rst.Groups)
		}
		members := rst.Groups[0].Students
		if len(members) != 1 || members[0].ID != std1.ID {
			t.Errorf("Groups[0].Students = %v; want only %s", members, std1.ID)
		}
	})
}

func Test_rosterApi_listTeachersAndStudents(t *testing.T) {
	env := newTestEnv(t)

	env.createTeacher(t, "Mr Jones")
	env.createStudent(t, "hana")

	tt := httpTest{path: "/protected/listTeachersAndStudents", auth: true, wantCode: http.StatusOK}
	req, rec := env.newRequest(t, tt)
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)

	var resp struct {
		Teachers []struct {
			Name string `json:"name"`
		} `json:"teachers"`
		Students []struct {
			Name string `json:"name"`
		} `json:"students"`
		Groups interface{} `json:"groups"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Teachers) != 1 || resp.Teachers[0].Name != "Mr Jones" {
		t.Errorf("Teachers = %v", resp.Teachers)
	}
	if len(resp.Students) != 1 || resp.Students[0].Name != "HANA" {
		t.Errorf("Students = %v", resp.Students)
	}
	if resp.Groups != nil {
		t.Errorf("Groups present in flat listing: %v", resp.Groups)
	}
}
