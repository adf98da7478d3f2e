package sqlinline

const QListAnalysisVersions = `--sql 6f1e8a37-b20c-49d5-8e74-3a96d1c50b28
select id, donor_id, user_id, version, note, is_current, created_at
from analysis_versions
where donor_id = $1::uuid and user_id = $2::uuid
order by version desc;
`

const QInsertAnalysisVersion = `--sql 0a7d3c58-61fb-4e92-b8a4-5d20c7e91f36
insert into analysis_versions(id, donor_id, user_id, version, note, is_current, created_at)
values ($1::uuid, $2::uuid, $3::uuid,
        coalesce((select max(version) from analysis_versions where donor_id = $2::uuid and user_id = $3::uuid), 0) + 1,
        $4::text, true, now())
returning id, donor_id, user_id, version, note, is_current, created_at;
`

const QClearCurrentAnalysisVersions = `--sql 8c2b5e74-a90d-4316-9f58-e6a41b273c09
update analysis_versions
set is_current = false
where donor_id = $1::uuid and user_id = $2::uuid and id <> $3::uuid;
`

const QRestoreAnalysisVersion = `--sql 2e9a6d43-57c1-48fb-a072-8b3d5f1e6c94
update analysis_versions
set is_current = true
where id = $1::uuid and user_id = $2::uuid
returning id, donor_id, user_id, version, note, is_current, created_at;
`
