package sqlinline

const QListWorkflowResponses = `--sql 4a6b9c11-8e27-45d0-bd13-7f2a90c6e855
select id, donor_id, user_id, step_id, question_id, response, created_at, updated_at
from workflow_responses
where donor_id = $1::uuid and user_id = $2::uuid
order by created_at desc;
`

const QUpsertWorkflowResponse = `--sql e3d52b80-94ac-4770-a1f6-0c5b28d9e147
insert into workflow_responses(id, donor_id, user_id, step_id, question_id, response, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::uuid, $3::text, $4::text, $5::text, now(), now())
on conflict (donor_id, user_id, step_id, question_id) do update set
    response = excluded.response,
    updated_at = now()
returning id, donor_id, user_id, step_id, question_id, response, created_at, updated_at;
`
